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
	"github.com/ethereum/go-ethereum/common"
	logging "github.com/ipfs/go-log"
)

var log = logging.Logger("mpt")

// NodeType is the tag of a node kind.
type NodeType uint64

const (
	NodeTypeEmpty NodeType = iota
	NodeTypeHash
	NodeTypeBranch
	NodeTypeExtension
	NodeTypeLeaf
)

// Node is a node of a partial trie. A nil Node is the empty trie.
// Nodes are never mutated once built, so subtrees can be shared.
type Node interface {
	// Type gets the node kind.
	Type() NodeType
}

// EmptyNode is the empty trie.
type EmptyNode struct{}

// HashNode is a subtree known only by its hash.
type HashNode struct {
	Hash common.Hash
}

// BranchNode has one child per nibble and an optional value.
type BranchNode struct {
	Children [16]Node
	Value    []byte
}

// ExtensionNode shares a path prefix before its child.
type ExtensionNode struct {
	Nibbles Nibbles
	Child   Node
}

// LeafNode holds a value at the end of a path.
type LeafNode struct {
	Nibbles Nibbles
	Value   []byte
}

func (EmptyNode) Type() NodeType      { return NodeTypeEmpty }
func (*HashNode) Type() NodeType      { return NodeTypeHash }
func (*BranchNode) Type() NodeType    { return NodeTypeBranch }
func (*ExtensionNode) Type() NodeType { return NodeTypeExtension }
func (*LeafNode) Type() NodeType      { return NodeTypeLeaf }

// IsEmpty checks if the node is the empty trie.
func IsEmpty(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case EmptyNode:
		return true
	case *EmptyNode:
		return true
	case *HashNode:
		return v == nil
	case *BranchNode:
		return v == nil
	case *ExtensionNode:
		return v == nil
	case *LeafNode:
		return v == nil
	}
	return false
}
