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
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ipfs/go-datastore/query"
)

func (s *witnessStoreImpl) gcRoutine() {
	defer func() {
		s.exitLoop <- true
	}()

	after := time.NewTicker(s.opts.GCPeriod)
	defer after.Stop()
	for {
		select {
		case <-s.routineCtx.Done():
			log.Infof("Exit GC routine")
			return
		case <-after.C:
			log.Infof("Start GC round")
			cleaned := s.gcRound()
			log.Infof("GC round cleared %v witnesses", cleaned)
		}
		if s.routineCtx.Err() != nil {
			log.Warnf("Exit mainloop due to context cancelled: %v", s.routineCtx.Err().Error())
			return
		}
	}
}

// gcRound deletes every witness stored longer than the retention ago.
func (s *witnessStoreImpl) gcRound() int {
	cutoff := s.now().Add(-s.opts.Retention).Unix()
	expired := make([]common.Hash, 0)
	func() {
		results, err := s.ds.Query(s.routineCtx, query.Query{Prefix: separator + storedAtKey})
		if err != nil {
			log.Warnf("GC - Fail to query ds: %v", err.Error())
			return
		}
		defer results.Close()
		for r := range results.Next() {
			if s.routineCtx.Err() != nil {
				log.Warnf("Exit GC round due to context cancelled: %v", s.routineCtx.Err().Error())
				return
			}
			if r.Error != nil {
				log.Warnf("GC - Fail to read entry: %v", r.Error.Error())
				return
			}
			digest, err := splitStoredAtKey(r.Key)
			if err != nil {
				log.Warnf("GC - Skip invalid entry: %v", err.Error())
				continue
			}
			storedAt, err := decodeStoredAt(r.Value)
			if err != nil {
				log.Warnf("GC - Skip entry %v with invalid time: %v", digest, err.Error())
				continue
			}
			if storedAt < cutoff {
				expired = append(expired, digest)
			}
		}
	}()
	cleaned := 0
	for _, digest := range expired {
		if s.routineCtx.Err() != nil {
			break
		}
		err := s.deleteWitness(s.routineCtx, digest)
		if err != nil {
			log.Warnf("GC - Fail to clear %v: %v", digest, err.Error())
			continue
		}
		cleaned++
	}
	return cleaned
}
