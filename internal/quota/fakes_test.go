package quota

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/loftdrive/service/internal/identity"
	"github.com/loftdrive/service/internal/profile"
	"github.com/loftdrive/service/internal/storage"
)

// fakeStore is an in-memory storage.Storage with per-key delete failure
// injection.
type fakeStore struct {
	mu       sync.Mutex
	objects  map[string]int64
	failures map[string]int // key → remaining injected delete failures
	listErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects:  make(map[string]int64),
		failures: make(map[string]int),
	}
}

func (s *fakeStore) put(key string, size int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = size
}

func (s *fakeStore) failDeleteOnce(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[key]++
}

func (s *fakeStore) List(_ context.Context, prefix string) ([]storage.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var objects []storage.ObjectInfo
	for key, size := range s.objects {
		if strings.HasPrefix(key, prefix) {
			objects = append(objects, storage.ObjectInfo{Key: key, Size: size})
		}
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

func (s *fakeStore) Upload(_ context.Context, key string, reader io.Reader, size int64, _ string) error {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return err
	}
	s.put(key, size)
	return nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures[key] > 0 {
		s.failures[key]--
		return errors.New("injected delete failure")
	}
	delete(s.objects, key)
	return nil
}

// fakeTiers is an in-memory TierStore. Absent callers are TierNone.
type fakeTiers struct {
	mu    sync.Mutex
	tiers map[string]profile.Tier
	err   error
}

func newFakeTiers() *fakeTiers {
	return &fakeTiers{tiers: make(map[string]profile.Tier)}
}

func (t *fakeTiers) TierOf(_ context.Context, callerID string) (profile.Tier, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return profile.TierNone, t.err
	}
	tier, ok := t.tiers[callerID]
	if !ok {
		return profile.TierNone, nil
	}
	return tier, nil
}

func (t *fakeTiers) SetTier(_ context.Context, callerID string, tier profile.Tier) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	t.tiers[callerID] = tier
	return nil
}

// fakeVerifier maps credentials to caller IDs; everything else is invalid.
type fakeVerifier struct {
	credentials map[string]string
}

func (v *fakeVerifier) Verify(credential string) (string, error) {
	callerID, ok := v.credentials[credential]
	if !ok {
		return "", identity.ErrInvalidCredential
	}
	return callerID, nil
}

// fakeSigner records mints instead of producing real signatures.
type fakeSigner struct {
	mints      int
	lastCaller string
	lastClaims map[string]interface{}
	err        error
}

func (s *fakeSigner) Mint(callerID string, claims map[string]interface{}) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.mints++
	s.lastCaller = callerID
	s.lastClaims = claims
	return "artifact-for-" + callerID, nil
}
