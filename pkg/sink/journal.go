package sink

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketCommits = "commits"

// ErrNoCommits is returned by Last when the journal is empty.
var ErrNoCommits = errors.New("sink: journal has no commits")

// Record is one committed markup value.
type Record struct {
	Seq    uint64    `json:"seq"`
	Engine string    `json:"engine,omitempty"`
	Time   time.Time `json:"time"`
	Markup string    `json:"markup"`
}

// Journal is a sink that appends every commit to a bbolt database, keeping
// the full commit history of one or more engines.
type Journal struct {
	db  *bolt.DB
	now func() time.Time

	// Engine is stored with each record written through Commit.
	Engine string
}

// OpenJournal opens or creates the journal database at path.
func OpenJournal(path string) (*Journal, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCommits))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize journal %s: %w", path, err)
	}
	return &Journal{db: db, now: time.Now}, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Commit appends markup as the next record.
func (j *Journal) Commit(markup string) error {
	_, err := j.Append(Record{Engine: j.Engine, Markup: markup})
	return err
}

// Append stores r under the next sequence number and returns that number,
// or 0 when the write failed. A zero r.Time is set to the current time.
func (j *Journal) Append(r Record) (uint64, error) {
	if r.Time.IsZero() {
		r.Time = j.now()
	}
	err := j.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCommits))
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		r.Seq = seq
		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), data)
	})
	if err != nil {
		return 0, err
	}
	return r.Seq, nil
}

// Len returns the number of records.
func (j *Journal) Len() (int, error) {
	var n int
	err := j.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(bucketCommits)).Stats().KeyN
		return nil
	})
	return n, err
}

// Records returns every record in commit order.
func (j *Journal) Records() ([]Record, error) {
	var records []Record
	err := j.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketCommits)).ForEach(func(k, v []byte) error {
			var r Record
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("corrupt record %d: %w", unmarshalSeq(k), err)
			}
			records = append(records, r)
			return nil
		})
	})
	return records, err
}

// Last returns the most recent record.
func (j *Journal) Last() (Record, error) {
	var r Record
	err := j.db.View(func(tx *bolt.Tx) error {
		k, v := tx.Bucket([]byte(bucketCommits)).Cursor().Last()
		if k == nil {
			return ErrNoCommits
		}
		return json.Unmarshal(v, &r)
	})
	return r, err
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
