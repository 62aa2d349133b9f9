package store

import (
	"sort"
	"strings"
	"time"
)

// TimeLayout is the creation timestamp format stored in data_criacao.
const TimeLayout = "2006-01-02 15:04:05"

// AccountRecord is the persisted unit for one user. Username is the map key
// in the credential file and is not repeated inside the record.
type AccountRecord struct {
	Username       string `json:"-"`
	PasswordDigest string `json:"senha"`
	CreatedAt      string `json:"data_criacao"`
}

// NewAccountRecord builds a record stamped with now in TimeLayout.
func NewAccountRecord(username, digest string, now time.Time) AccountRecord {
	return AccountRecord{Username: username, PasswordDigest: digest, CreatedAt: now.Format(TimeLayout)}
}

// Records maps usernames, with their original casing, to account records.
type Records map[string]AccountRecord

// Find looks username up ignoring case and returns the key as stored. If
// an externally edited file holds several keys differing only in case, the
// lexicographically smallest one wins.
func (r Records) Find(username string) (AccountRecord, bool) {
	found := ""
	ok := false
	for key := range r {
		if strings.EqualFold(key, username) && (!ok || key < found) {
			found, ok = key, true
		}
	}
	if !ok {
		return AccountRecord{}, false
	}

	rec := r[found]
	rec.Username = found
	return rec, true
}

// Has reports whether username is taken ignoring case.
func (r Records) Has(username string) bool {
	_, ok := r.Find(username)
	return ok
}

// Clone returns an independent copy of r.
func (r Records) Clone() Records {
	out := make(Records, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Sorted returns the records ordered by username, with Username populated.
func (r Records) Sorted() []AccountRecord {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]AccountRecord, 0, len(keys))
	for _, k := range keys {
		rec := r[k]
		rec.Username = k
		out = append(out, rec)
	}
	return out
}

// normalize fills Username from the map key.
func (r Records) normalize() Records {
	if r == nil {
		return Records{}
	}
	for k, v := range r {
		v.Username = k
		r[k] = v
	}
	return r
}
