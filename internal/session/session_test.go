package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarnavabiswas0/Feedback/internal/shared/testutil"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
	logger, _ := testutil.NewTestLogger(t)
	return NewStore(ttl, WithClock(clock.Now), WithLogger(logger)), clock
}

func report(name string) Artifact {
	return Artifact{Kind: KindReport, FileName: name, ContentType: "application/pdf", Data: []byte(name)}
}

func TestSession_Lifecycle(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	sess, _ := store.Create()

	assert.NotEmpty(t, sess.ID)
	assert.False(t, sess.HasOutputs())
	_, err := sess.Artifact(KindReport)
	assert.ErrorIs(t, err, ErrNoOutputs)

	sess.Overwrite(report("first.docx"), Artifact{Kind: KindSpreadsheet, FileName: "a.xlsx", Data: []byte("xlsx")})
	require.True(t, sess.HasOutputs())
	assert.Len(t, sess.Artifacts(), 2)

	// a later run replaces everything, it does not merge
	sess.Overwrite(report("second.docx"))
	got, err := sess.Artifact(KindReport)
	require.NoError(t, err)
	assert.Equal(t, "second.docx", got.FileName)
	assert.Equal(t, len("second.docx"), got.Size())
	_, err = sess.Artifact(KindSpreadsheet)
	assert.ErrorIs(t, err, ErrNoOutputs)

	sess.Clear()
	assert.False(t, sess.HasOutputs())
	assert.Empty(t, sess.Artifacts())
}

func TestSession_OverwriteStampsRevision(t *testing.T) {
	store, clock := newTestStore(t, time.Hour)
	sess, _ := store.Create()
	assert.True(t, sess.UpdatedAt().IsZero())

	sess.Overwrite(report("first.docx"))
	first, err := sess.Artifact(KindReport)
	require.NoError(t, err)
	assert.Equal(t, clock.Now(), first.ModTime)
	assert.Equal(t, clock.Now(), sess.UpdatedAt())

	// same instant, different run
	sess.Overwrite(report("second.docx"))
	second, err := sess.Artifact(KindReport)
	require.NoError(t, err)
	assert.Greater(t, second.Revision, first.Revision)
	assert.NotEqual(t, first.ETag(sess.ID), second.ETag(sess.ID))

	clock.Advance(time.Minute)
	sess.Clear()
	assert.Equal(t, clock.Now(), sess.UpdatedAt())

	sess.Overwrite(report("third.docx"))
	third, err := sess.Artifact(KindReport)
	require.NoError(t, err)
	assert.Greater(t, third.Revision, second.Revision+1, "clearing counts as a change")
}

func TestSession_ArtifactsSortedByKind(t *testing.T) {
	store, _ := newTestStore(t, 0)
	sess, _ := store.Create()

	sess.Overwrite(Artifact{Kind: KindSpreadsheet}, Artifact{Kind: KindReport})

	arts := sess.Artifacts()
	require.Len(t, arts, 2)
	assert.Equal(t, KindReport, arts[0].Kind)
	assert.Equal(t, KindSpreadsheet, arts[1].Kind)
}

func TestStore_GetAndDelete(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	sess, _ := store.Create()

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	sess.Overwrite(report("r.docx"))
	require.NoError(t, store.Delete(sess.ID))
	assert.False(t, sess.HasOutputs(), "deleted sessions release their buffers")
	assert.ErrorIs(t, store.Delete(sess.ID), ErrSessionNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestStore_Expiry(t *testing.T) {
	store, clock := newTestStore(t, 30*time.Minute)

	idle, _ := store.Create()
	active, _ := store.Create()

	clock.Advance(20 * time.Minute)
	_, err := store.Get(active.ID)
	require.NoError(t, err)

	clock.Advance(15 * time.Minute)
	_, err = store.Get(idle.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// expired sessions stay registered until a create sweeps them
	assert.Equal(t, 2, store.Len())
	clock.Advance(31 * time.Minute)
	_, swept := store.Create()
	assert.Equal(t, 2, swept)
	assert.Equal(t, 1, store.Len())
}

func TestStore_Sweep(t *testing.T) {
	store, clock := newTestStore(t, time.Minute)
	store.Create()
	store.Create()

	assert.Equal(t, 0, store.Sweep())
	clock.Advance(2 * time.Minute)
	assert.Equal(t, 2, store.Sweep())
}

func TestStore_NoTTL(t *testing.T) {
	store, clock := newTestStore(t, 0)
	sess, _ := store.Create()

	clock.Advance(1000 * time.Hour)
	_, err := store.Get(sess.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, store.Sweep())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess, _ := store.Create()
			sess.Overwrite(report("r.docx"))
			_, _ = store.Get(sess.ID)
			_, _ = sess.Artifact(KindReport)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, store.Len())
}
