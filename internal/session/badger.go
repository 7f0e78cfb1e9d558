package session

import (
	"bytes"
	"errors"
	"fmt"

	xdr "github.com/davecgh/go-xdr/xdr2"
	badger "github.com/dgraph-io/badger/v3"

	"github.com/sornss/location/internal/location"
)

// BadgerStore keeps visitor sessions in an embedded badger database so
// cached locations survive process restarts.
type BadgerStore struct {
	db *badger.DB
}

func NewBadgerStore(path string, inMemory bool) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithInMemory(inMemory)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("can't open session storage: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Session returns the session view for one visitor. Keys of different
// visitors never collide.
func (s *BadgerStore) Session(visitor string) Session {
	return &badgerSession{db: s.db, prefix: "visitor-" + visitor + "-"}
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

type badgerSession struct {
	db     *badger.DB
	prefix string
}

func (s *badgerSession) Has(key string) (bool, error) {
	loc, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return loc != nil, nil
}

func (s *badgerSession) Get(key string) (*location.Location, error) {
	var loc *location.Location
	err := s.db.View(func(txn *badger.Txn) error {
		v, err := txn.Get([]byte(s.prefix + key))
		if err != nil {
			return fmt.Errorf("can't get value from storage: %w", err)
		}
		b, err := v.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("can't copy value: %w", err)
		}
		_, err = xdr.Unmarshal(bytes.NewReader(b), &loc)
		if err != nil {
			return fmt.Errorf("can't unmarshal value: %w", err)
		}
		return nil
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	return loc, err
}

func (s *badgerSession) Set(key string, loc *location.Location) error {
	return s.db.Update(func(txn *badger.Txn) error {
		var w bytes.Buffer
		_, err := xdr.Marshal(&w, loc)
		if err != nil {
			return fmt.Errorf("can't marshal value: %w", err)
		}
		err = txn.Set([]byte(s.prefix+key), w.Bytes())
		if err != nil {
			return fmt.Errorf("can't save value to storage: %w", err)
		}
		return nil
	})
}

func (s *badgerSession) Forget(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(s.prefix + key))
		if err != nil {
			return fmt.Errorf("can't delete value from storage: %w", err)
		}
		return nil
	})
}
