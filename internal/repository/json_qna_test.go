package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestJSONQnaRepo_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history", "qna.json")
	ctx := context.Background()

	repo, err := NewJSONQnaRepo(path)
	require.NoError(t, err)
	first, err := repo.Append(ctx, "S1", "What's next?", "Finish")
	require.NoError(t, err)

	reopened, err := NewJSONQnaRepo(path)
	require.NoError(t, err)
	history, err := reopened.History(ctx, "S1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, first.ID, history[0].ID)
	assert.Equal(t, "What's next?", history[0].Question)
	assert.Equal(t, "Finish", history[0].Answer)
}

func TestJSONQnaRepo_FileUsesLogicalFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qna.json")
	repo, err := NewJSONQnaRepo(path)
	require.NoError(t, err)

	_, err = repo.Append(context.Background(), "S1", "q", "a")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, field := range []string{`"id"`, `"subgoal_id"`, `"question"`, `"answer"`} {
		assert.Contains(t, string(data), field)
	}
}

func TestJSONQnaRepo_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qna.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewJSONQnaRepo(path)
	assert.Error(t, err)
}

func TestJSONQnaRepo_EmptyFileIsEmptyHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qna.json")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	repo, err := NewJSONQnaRepo(path)
	require.NoError(t, err)
	history, err := repo.History(context.Background(), "S1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestJSONQnaRepo_SharedFileKeepsEveryWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qna.json")
	ctx := context.Background()

	chat, err := NewJSONQnaRepo(path)
	require.NoError(t, err)
	ask, err := NewJSONQnaRepo(path)
	require.NoError(t, err)

	_, err = chat.Append(ctx, "S1", "first", "a1")
	require.NoError(t, err)
	_, err = ask.Append(ctx, "S2", "other", "b1")
	require.NoError(t, err)
	_, err = chat.Append(ctx, "S1", "second", "a2")
	require.NoError(t, err)

	// Each handle sees the other's writes without reopening.
	s2, err := chat.History(ctx, "S2")
	require.NoError(t, err)
	require.Len(t, s2, 1)
	assert.Equal(t, "other", s2[0].Question)

	reopened, err := NewJSONQnaRepo(path)
	require.NoError(t, err)
	s1, err := reopened.History(ctx, "S1")
	require.NoError(t, err)
	require.Len(t, s1, 2)
	assert.Equal(t, "first", s1[0].Question)
	assert.Equal(t, "second", s1[1].Question)
}

func TestJSONQnaRepo_ConcurrentHandlesLoseNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qna.json")
	ctx := context.Background()

	a, err := NewJSONQnaRepo(path)
	require.NoError(t, err)
	b, err := NewJSONQnaRepo(path)
	require.NoError(t, err)

	const perSubgoal = 10
	var g errgroup.Group
	for _, w := range []struct {
		repo *JSONQnaRepo
		id   string
	}{{a, "S1"}, {b, "S2"}} {
		g.Go(func() error {
			for i := 0; i < perSubgoal; i++ {
				if _, err := w.repo.Append(ctx, w.id, fmt.Sprintf("q%d", i), "a"); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, id := range []string{"S1", "S2"} {
		history, err := a.History(ctx, id)
		require.NoError(t, err)
		require.Len(t, history, perSubgoal, id)
		for i, e := range history {
			assert.Equal(t, fmt.Sprintf("q%d", i), e.Question)
		}
	}
}
