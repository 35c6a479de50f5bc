package credstore

import "context"

// Entry pairs the raw bearer token with the JSON-serialized identity.
// The two occupy independent slots in the underlying storage but are
// written and cleared as one unit: an entry observed after a cold restart
// is either complete or empty, never half-populated.
type Entry struct {
	Token    string
	Identity []byte
}

// Empty reports whether neither slot holds a value.
func (e Entry) Empty() bool { return e.Token == "" && len(e.Identity) == 0 }

// Complete reports whether both slots hold a value.
func (e Entry) Complete() bool { return e.Token != "" && len(e.Identity) > 0 }

// Store is the persistent credential store capability injected into the
// session. Implementations must make Save and Clear atomic with respect to
// the two slots; Load must never fabricate a value for a missing slot.
type Store interface {
	// Load reads the current entry. A missing entry is (Entry{}, nil).
	Load(ctx context.Context) (Entry, error)
	// Save writes token and identity together.
	Save(ctx context.Context, entry Entry) error
	// SaveIdentity rewrites only the identity slot. Used by the identity
	// merge-update and refresh paths, which never touch the token.
	SaveIdentity(ctx context.Context, identity []byte) error
	// Clear removes both slots together. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}

// Keys names the two storage slots for backends with a shared keyspace.
type Keys struct {
	Token    string
	Identity string
}

func (k Keys) withDefaults() Keys {
	if k.Token == "" {
		k.Token = "token"
	}
	if k.Identity == "" {
		k.Identity = "user"
	}
	return k
}
