package witnessstore

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
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v2/options"
	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru/v2"
	badgerds "github.com/ipfs/go-ds-badger2"
	logging "github.com/ipfs/go-log"
	itypes "github.com/wcgcyx/tracegen/types"
)

// Logger
var log = logging.Logger("witnessstore")

// witnessStoreImpl implements WitnessStore.
type witnessStoreImpl struct {
	ctx   context.Context
	opts  Opts
	ds    *badgerds.Datastore
	cache *lru.Cache[common.Hash, itypes.Witness]
	now   func() time.Time
	// Process related
	routineCtx context.Context
	cancel     context.CancelFunc
	exitLoop   chan bool
}

// NewWitnessStoreImpl creates a new WitnessStore.
func NewWitnessStoreImpl(ctx context.Context, opts Opts) (WitnessStore, error) {
	return newWitnessStoreImpl(ctx, opts, time.Now)
}

func newWitnessStoreImpl(ctx context.Context, opts Opts, now func() time.Time) (*witnessStoreImpl, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("empty path provided")
	}
	if opts.CacheSize <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %v", opts.CacheSize)
	}
	if opts.GCPeriod <= 0 {
		return nil, fmt.Errorf("gc period must be positive, got %v", opts.GCPeriod)
	}
	cache, err := lru.New[common.Hash, itypes.Witness](opts.CacheSize)
	if err != nil {
		return nil, err
	}
	dsopts := badgerds.DefaultOptions
	dsopts.SyncWrites = false
	dsopts.Truncate = true
	// Use max table size of 256MiB
	dsopts.Options.MaxTableSize = 256 << 20
	// Use memory map for value log
	dsopts.Options.ValueLogLoadingMode = options.MemoryMap
	ds, err := badgerds.NewDatastore(opts.Path, &dsopts)
	if err != nil {
		return nil, err
	}
	routineCtx, cancel := context.WithCancel(context.Background())
	res := &witnessStoreImpl{
		ctx:        ctx,
		opts:       opts,
		ds:         ds,
		cache:      cache,
		now:        now,
		routineCtx: routineCtx,
		cancel:     cancel,
		exitLoop:   make(chan bool),
	}
	go res.gcRoutine()
	log.Infof("Witness store opened at %v", opts.Path)
	return res, nil
}

// HasWitness checks if a witness is stored for the given digest.
func (s *witnessStoreImpl) HasWitness(digest common.Hash) (bool, error) {
	if s.cache.Contains(digest) {
		return true, nil
	}
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.ReadTimeout)
	defer cancel()

	return s.ds.Has(ctx, getWitnessKey(digest))
}

// GetWitness gets the witness stored for the given digest.
func (s *witnessStoreImpl) GetWitness(digest common.Hash) (itypes.Witness, error) {
	w, ok := s.cache.Get(digest)
	if ok {
		log.Debugf("Get witness %v from cache", digest)
		return w, nil
	}
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.ReadTimeout)
	defer cancel()

	val, err := s.ds.Get(ctx, getWitnessKey(digest))
	if err != nil {
		return itypes.Witness{}, err
	}
	stored, err := itypes.DecodeStoredWitness(val)
	if err != nil {
		return itypes.Witness{}, err
	}
	if stored.Digest != digest {
		return itypes.Witness{}, fmt.Errorf("witness stored under %v has digest %v", digest, stored.Digest)
	}
	log.Debugf("Get witness %v from ds, stored at %v", digest, stored.StoredAt)
	s.cache.Add(digest, stored.Witness)
	return stored.Witness, nil
}

// PutWitness stores the witness for the given digest.
func (s *witnessStoreImpl) PutWitness(digest common.Hash, w itypes.Witness) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.WriteTimeout)
	defer cancel()

	storedAt := s.now().Unix()
	batch, err := s.ds.Batch(ctx)
	if err != nil {
		return err
	}
	err = batch.Put(ctx, getWitnessKey(digest), itypes.EncodeStoredWitness(itypes.StoredWitness{
		Digest:   digest,
		StoredAt: storedAt,
		Witness:  w,
	}))
	if err != nil {
		return err
	}
	err = batch.Put(ctx, getStoredAtKey(digest), encodeStoredAt(storedAt))
	if err != nil {
		return err
	}
	err = batch.Commit(ctx)
	if err != nil {
		return err
	}
	s.cache.Add(digest, w)
	log.Debugf("Put witness %v with %v values", digest, w.Len())
	return nil
}

// DeleteWitness deletes the witness stored for the given digest.
func (s *witnessStoreImpl) DeleteWitness(digest common.Hash) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.WriteTimeout)
	defer cancel()

	err := s.deleteWitness(ctx, digest)
	if err != nil {
		return err
	}
	log.Debugf("Delete witness %v", digest)
	return nil
}

// deleteWitness deletes both entries of a witness in one batch.
func (s *witnessStoreImpl) deleteWitness(ctx context.Context, digest common.Hash) error {
	s.cache.Remove(digest)
	batch, err := s.ds.Batch(ctx)
	if err != nil {
		return err
	}
	err = batch.Delete(ctx, getWitnessKey(digest))
	if err != nil {
		return err
	}
	err = batch.Delete(ctx, getStoredAtKey(digest))
	if err != nil {
		return err
	}
	return batch.Commit(ctx)
}

// Shutdown safely shuts the witness store down.
func (s *witnessStoreImpl) Shutdown() {
	log.Infof("Close witness store...")
	s.cancel()
	<-s.exitLoop
	err := s.ds.Close()
	if err != nil {
		log.Errorf("Fail to close witness store: %v", err.Error())
		return
	}
	log.Infof("Witness store closed successfully.")
}
