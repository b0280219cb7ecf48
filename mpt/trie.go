package mpt

/*
 * Licensed under LGPL-3.0.
 *
 * You can get a copy of the LGPL-3.0 License at
 *
 * https://www.gnu.org/licenses/lgpl-3.0.en.html
 *
 * @wcgcyx - https://github.com/wcgcyx
 */

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	// ErrHashNodeInsert is returned when an insertion path runs into a
	// hashed out subtree.
	ErrHashNodeInsert = errors.New("can not insert under a hash node")

	// ErrHashNodeLookup is returned when a lookup path runs into a hashed
	// out subtree.
	ErrHashNodeLookup = errors.New("can not look up under a hash node")

	// ErrEmptyValue is returned when inserting an empty value.
	ErrEmptyValue = errors.New("empty value")
)

// Insert returns a trie with value stored at key. The given trie is left
// untouched and shares all unchanged subtrees with the result.
func Insert(n Node, key Nibbles, value []byte) (Node, error) {
	if len(value) == 0 {
		return nil, ErrEmptyValue
	}
	res, err := insert(n, key, bytes.Clone(value))
	if err != nil {
		return nil, fmt.Errorf("error inserting key %x: %w", []byte(key), err)
	}
	return res, nil
}

func insert(n Node, key Nibbles, value []byte) (Node, error) {
	if IsEmpty(n) {
		return &LeafNode{Nibbles: concat(key), Value: value}, nil
	}
	switch node := n.(type) {
	case *HashNode:
		return nil, ErrHashNodeInsert
	case *LeafNode:
		p := commonPrefix(node.Nibbles, key)
		if p == len(node.Nibbles) && p == len(key) {
			return &LeafNode{Nibbles: node.Nibbles, Value: value}, nil
		}
		branch := &BranchNode{}
		placeAt(branch, node.Nibbles[p:], node.Value)
		placeAt(branch, key[p:], value)
		return withPrefix(key[:p], branch), nil
	case *ExtensionNode:
		p := commonPrefix(node.Nibbles, key)
		if p == len(node.Nibbles) {
			child, err := insert(node.Child, key[p:], value)
			if err != nil {
				return nil, err
			}
			return &ExtensionNode{Nibbles: node.Nibbles, Child: child}, nil
		}
		branch := &BranchNode{}
		branch.Children[node.Nibbles[p]] = withPrefix(node.Nibbles[p+1:], node.Child)
		placeAt(branch, key[p:], value)
		return withPrefix(key[:p], branch), nil
	case *BranchNode:
		res := &BranchNode{Children: node.Children, Value: node.Value}
		if len(key) == 0 {
			res.Value = value
			return res, nil
		}
		child, err := insert(node.Children[key[0]], key[1:], value)
		if err != nil {
			return nil, err
		}
		res.Children[key[0]] = child
		return res, nil
	}
	log.Panicf("unknown node type %T", n)
	return nil, nil
}

// placeAt stores value in a fresh branch at the remaining path.
func placeAt(branch *BranchNode, rest Nibbles, value []byte) {
	if len(rest) == 0 {
		branch.Value = value
		return
	}
	branch.Children[rest[0]] = &LeafNode{Nibbles: concat(rest[1:]), Value: value}
}

// withPrefix puts child behind an extension unless the prefix is empty.
func withPrefix(prefix Nibbles, child Node) Node {
	if len(prefix) == 0 {
		return child
	}
	return &ExtensionNode{Nibbles: concat(prefix), Child: child}
}

// Get gets the value stored at key, or nil if the key is absent.
func Get(n Node, key Nibbles) ([]byte, error) {
	for {
		if IsEmpty(n) {
			return nil, nil
		}
		switch node := n.(type) {
		case *HashNode:
			return nil, fmt.Errorf("error getting key %x: %w", []byte(key), ErrHashNodeLookup)
		case *LeafNode:
			if bytes.Equal(node.Nibbles, key) {
				return node.Value, nil
			}
			return nil, nil
		case *ExtensionNode:
			if len(key) < len(node.Nibbles) || !bytes.Equal(node.Nibbles, key[:len(node.Nibbles)]) {
				return nil, nil
			}
			key = key[len(node.Nibbles):]
			n = node.Child
		case *BranchNode:
			if len(key) == 0 {
				return node.Value, nil
			}
			n = node.Children[key[0]]
			key = key[1:]
		default:
			log.Panicf("unknown node type %T", n)
		}
	}
}
