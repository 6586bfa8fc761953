package assist

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_AppendAndHistory(t *testing.T) {
	s := NewSession()
	s.AppendUser("hola")
	s.AppendAssistant("¿en qué puedo ayudarte?")

	turns := s.History()
	require.Len(t, turns, 2)
	assert.Equal(t, RoleUser, turns[0].Role)
	assert.Equal(t, "hola", turns[0].Text)
	assert.Equal(t, RoleAssistant, turns[1].Role)
	assert.False(t, turns[0].Timestamp.IsZero())
}

func TestSession_ClearThenAppend(t *testing.T) {
	s := NewSession()
	s.AppendUser("a")
	s.AppendAssistant("b")

	cleared := s.Clear()
	assert.Equal(t, 2, cleared)
	assert.Empty(t, s.History())

	s.AppendUser("c")
	s.AppendAssistant("d")
	turns := s.History()
	require.Len(t, turns, 2)
	assert.Equal(t, "c", turns[0].Text)
	assert.Equal(t, "d", turns[1].Text)
}

func TestSession_HistoryIsSnapshot(t *testing.T) {
	s := NewSession()
	s.AppendUser("first")

	snapshot := s.History()
	s.AppendUser("second")

	assert.Len(t, snapshot, 1)
	assert.Len(t, s.History(), 2)
}

func TestSession_ToleratesConsecutiveUserTurns(t *testing.T) {
	// A failed assistant reply leaves two user turns in a row; that is a
	// valid history, not corruption.
	s := NewSession()
	s.AppendUser("first try")
	s.AppendUser("second try")
	s.AppendAssistant("answer")

	turns := s.History()
	require.Len(t, turns, 3)
	assert.Equal(t, RoleUser, turns[0].Role)
	assert.Equal(t, RoleUser, turns[1].Role)
	assert.Equal(t, RoleAssistant, turns[2].Role)
}

func TestSession_ConcurrentAppends(t *testing.T) {
	const n = 200
	s := NewSession()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AppendUser("msg")
		}()
	}
	wg.Wait()

	turns := s.History()
	require.Len(t, turns, n)
	for _, turn := range turns {
		assert.Equal(t, RoleUser, turn.Role)
		assert.Equal(t, "msg", turn.Text)
	}
}

func TestSessionStore_IsolatesSessions(t *testing.T) {
	st := NewSessionStore()

	st.Get("a").AppendUser("for a")
	st.Get("b").AppendUser("for b")

	require.Len(t, st.Get("a").History(), 1)
	require.Len(t, st.Get("b").History(), 1)
	assert.Equal(t, "for a", st.Get("a").History()[0].Text)

	st.Delete("a")
	assert.Empty(t, st.Get("a").History())
	assert.Len(t, st.Get("b").History(), 1)
}

func TestSessionStore_NewAllocatesDistinctIDs(t *testing.T) {
	st := NewSessionStore()
	s1, id1 := st.New()
	s2, id2 := st.New()

	require.NotEqual(t, id1, id2)
	s1.AppendUser("x")
	assert.Empty(t, s2.History())
	assert.Same(t, s1, st.Get(id1))
}
