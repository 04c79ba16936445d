package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/haierkeys/product-note-service/internal/domain"
	"github.com/haierkeys/product-note-service/pkg/code"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	testProductID = "0a1b2c3d4e5f60718293a4b5c6d7e8f9"
	testNoteID    = "1f2e3d4c5b6a79881726354453627180"
)

type mockNoteRepo struct {
	domain.ProductNoteRepository

	searchFn func(ctx context.Context, c *domain.Criteria) ([]*domain.ProductNote, error)
	upsertFn func(ctx context.Context, w []domain.ProductNoteWrite) (*domain.WriteResult, error)
	updateFn func(ctx context.Context, w []domain.ProductNoteWrite) (*domain.WriteResult, error)
	deleteFn func(ctx context.Context, ids []string) (*domain.WriteResult, error)

	searches []*domain.Criteria
	upserts  [][]domain.ProductNoteWrite
	updates  [][]domain.ProductNoteWrite
	deletes  [][]string
}

func (m *mockNoteRepo) Search(ctx context.Context, c *domain.Criteria) ([]*domain.ProductNote, error) {
	m.searches = append(m.searches, c)
	if m.searchFn == nil {
		return nil, nil
	}
	return m.searchFn(ctx, c)
}

func (m *mockNoteRepo) Upsert(ctx context.Context, w []domain.ProductNoteWrite) (*domain.WriteResult, error) {
	m.upserts = append(m.upserts, w)
	if m.upsertFn == nil {
		return domain.NewWriteResult(), nil
	}
	return m.upsertFn(ctx, w)
}

func (m *mockNoteRepo) Update(ctx context.Context, w []domain.ProductNoteWrite) (*domain.WriteResult, error) {
	m.updates = append(m.updates, w)
	if m.updateFn == nil {
		return domain.NewWriteResult(), nil
	}
	return m.updateFn(ctx, w)
}

func (m *mockNoteRepo) Delete(ctx context.Context, ids []string) (*domain.WriteResult, error) {
	m.deletes = append(m.deletes, ids)
	if m.deleteFn == nil {
		return domain.NewWriteResult(), nil
	}
	return m.deleteFn(ctx, ids)
}

type mockProductRepo struct {
	domain.ProductRepository

	products []*domain.Product
	err      error
	searches []*domain.Criteria
}

func (m *mockProductRepo) Search(ctx context.Context, c *domain.Criteria) ([]*domain.Product, error) {
	m.searches = append(m.searches, c)
	return m.products, m.err
}

func affected(ids ...string) func(context.Context, []domain.ProductNoteWrite) (*domain.WriteResult, error) {
	return func(context.Context, []domain.ProductNoteWrite) (*domain.WriteResult, error) {
		r := domain.NewWriteResult()
		r.Add(domain.ProductNoteEntity, ids...)
		return r, nil
	}
}

func failing(err error) func(context.Context, []domain.ProductNoteWrite) (*domain.WriteResult, error) {
	return func(context.Context, []domain.ProductNoteWrite) (*domain.WriteResult, error) {
		return nil, err
	}
}

var errStore = domain.NewStoreError(domain.ProductNoteEntity, "upsert", errors.New("connection refused"))

func newTestService(notes *mockNoteRepo, products *mockProductRepo) (*productNoteService, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	if products == nil {
		products = &mockProductRepo{}
	}
	svc := NewProductNoteService(notes, products, &ServiceConfig{}, zap.New(core)).(*productNoteService)
	return svc, logs
}

func TestGetProductWithNotes(t *testing.T) {
	ctx := context.Background()

	products := &mockProductRepo{products: []*domain.Product{{ID: testProductID, Notes: []*domain.ProductNote{{ID: testNoteID}}}}}
	svc, _ := newTestService(&mockNoteRepo{}, products)

	p, err := svc.GetProductWithNotes(ctx, testProductID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Len(t, p.Notes, 1)

	c := products.searches[0]
	assert.Equal(t, []string{testProductID}, c.IDs)
	assert.True(t, c.HasAssociation(domain.ProductNotesAssociation))

	products.products = nil
	p, err = svc.GetProductWithNotes(ctx, testProductID)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestListByProduct(t *testing.T) {
	repo := &mockNoteRepo{}
	svc, _ := newTestService(repo, nil)

	_, err := svc.ListByProduct(context.Background(), testProductID)
	require.NoError(t, err)

	c := repo.searches[0]
	assert.Equal(t, []domain.Filter{domain.Equals("productId", testProductID)}, c.Filters)
	assert.Equal(t, []domain.Sorting{domain.Sort("createdAt", domain.SortDesc)}, c.Sortings)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("writes live version and returns id", func(t *testing.T) {
		repo := &mockNoteRepo{upsertFn: affected(testNoteID)}
		svc, logs := newTestService(repo, nil)

		id, err := svc.Create(ctx, testProductID, "")
		require.NoError(t, err)
		assert.Equal(t, testNoteID, id)

		require.Len(t, repo.upserts, 1)
		w := repo.upserts[0][0]
		assert.Equal(t, testProductID, w.ProductID)
		assert.Equal(t, domain.LiveVersionID, w.ProductVersionID)
		require.NotNil(t, w.Note)
		assert.Equal(t, "", *w.Note)
		assert.Zero(t, logs.Len())
	})

	t.Run("no affected id", func(t *testing.T) {
		svc, _ := newTestService(&mockNoteRepo{}, nil)
		id, err := svc.Create(ctx, testProductID, "x")
		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("store failure propagates unlogged", func(t *testing.T) {
		svc, logs := newTestService(&mockNoteRepo{upsertFn: failing(errStore)}, nil)
		_, err := svc.Create(ctx, testProductID, "x")
		assert.ErrorIs(t, err, errStore)
		assert.Zero(t, logs.Len())
	})
}

func TestCreateValidated(t *testing.T) {
	ctx := context.Background()

	t.Run("trims and writes", func(t *testing.T) {
		repo := &mockNoteRepo{upsertFn: affected(testNoteID)}
		svc, _ := newTestService(repo, nil)

		res, err := svc.CreateValidated(ctx, testProductID, "  check stock \n")
		require.NoError(t, err)
		assert.Equal(t, &CreateResult{Success: true, ID: testNoteID, Message: "Product note created successfully"}, res)
		assert.Equal(t, "check stock", *repo.upserts[0][0].Note)
	})

	cases := []struct {
		name string
		note string
		rule string
		code *code.Code
	}{
		{"empty", "", "required", code.ErrorNoteEmpty},
		{"whitespace only", " \t\n ", "required", code.ErrorNoteEmpty},
		{"too long", strings.Repeat("a", 1001), "max", code.ErrorNoteTooLong},
		{"too long multibyte", strings.Repeat("备", 1001), "max", code.ErrorNoteTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockNoteRepo{}
			svc, logs := newTestService(repo, nil)

			res, err := svc.CreateValidated(ctx, testProductID, tc.note)
			assert.Nil(t, res)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "note", verr.Field)
			assert.Equal(t, tc.rule, verr.Rule)
			assert.ErrorIs(t, err, tc.code)
			assert.Empty(t, repo.upserts, "validation must fail before any write")
			assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
		})
	}

	t.Run("boundary lengths pass", func(t *testing.T) {
		repo := &mockNoteRepo{upsertFn: affected(testNoteID)}
		svc, _ := newTestService(repo, nil)

		_, err := svc.CreateValidated(ctx, testProductID, strings.Repeat("a", 1000))
		require.NoError(t, err)
		_, err = svc.CreateValidated(ctx, testProductID, " "+strings.Repeat("备", 1000)+" ")
		require.NoError(t, err)
		_, err = svc.CreateValidated(ctx, testProductID, "x")
		require.NoError(t, err)
	})

	t.Run("store failure is logged and returned", func(t *testing.T) {
		svc, logs := newTestService(&mockNoteRepo{upsertFn: failing(errStore)}, nil)

		res, err := svc.CreateValidated(ctx, testProductID, "fine")
		assert.Nil(t, res)
		assert.ErrorIs(t, err, errStore)

		entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, testProductID, fields["productId"])
		assert.Equal(t, "fine", fields["note"])
		assert.Equal(t, int64(code.ErrorDBQuery.Code()), fields["errorCode"])
		assert.Equal(t, errStore.Error(), fields["errorMessage"])
	})
}

func TestCreateValidatedHonoursConfiguredLimit(t *testing.T) {
	repo := &mockNoteRepo{upsertFn: affected(testNoteID)}
	svc := NewProductNoteService(repo, &mockProductRepo{}, &ServiceConfig{Note: NoteServiceConfig{MaxLength: 5}}, nil)

	_, err := svc.CreateValidated(context.Background(), testProductID, "123456")
	assert.ErrorIs(t, err, code.ErrorNoteTooLong)
}

func TestUpdateContent(t *testing.T) {
	ctx := context.Background()

	t.Run("upsert mode uses upsert", func(t *testing.T) {
		repo := &mockNoteRepo{upsertFn: affected(testNoteID)}
		svc, _ := newTestService(repo, nil)

		ok, err := svc.UpdateContent(ctx, testNoteID, "new", WriteModeUpsert)
		require.NoError(t, err)
		assert.True(t, ok)
		require.Len(t, repo.upserts, 1)
		assert.Empty(t, repo.updates)
		assert.Equal(t, testNoteID, repo.upserts[0][0].ID)
		assert.Empty(t, repo.upserts[0][0].ProductID)
	})

	t.Run("strict mode uses update and reports absent id as false", func(t *testing.T) {
		repo := &mockNoteRepo{}
		svc, _ := newTestService(repo, nil)

		ok, err := svc.UpdateContent(ctx, testNoteID, "new", WriteModeStrict)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Len(t, repo.updates, 1)
		assert.Empty(t, repo.upserts)
	})

	t.Run("other affected id is not a write of this id", func(t *testing.T) {
		svc, _ := newTestService(&mockNoteRepo{upsertFn: affected(domain.NewID())}, nil)
		ok, err := svc.UpdateContent(ctx, testNoteID, "new", WriteModeUpsert)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("no validation", func(t *testing.T) {
		repo := &mockNoteRepo{upsertFn: affected(testNoteID)}
		svc, _ := newTestService(repo, nil)
		ok, err := svc.UpdateContent(ctx, testNoteID, strings.Repeat("a", 5000), WriteModeUpsert)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("failure propagates unlogged", func(t *testing.T) {
		svc, logs := newTestService(&mockNoteRepo{updateFn: failing(errStore)}, nil)
		_, err := svc.UpdateContent(ctx, testNoteID, "new", WriteModeStrict)
		assert.ErrorIs(t, err, errStore)
		assert.Zero(t, logs.Len())
	})
}

func TestUpdateContentSafe(t *testing.T) {
	ctx := context.Background()

	svc, logs := newTestService(&mockNoteRepo{upsertFn: affected(testNoteID)}, nil)
	assert.True(t, svc.UpdateContentSafe(ctx, testNoteID, "new"))
	assert.Zero(t, logs.Len())

	svc, logs = newTestService(&mockNoteRepo{upsertFn: failing(errStore)}, nil)
	assert.False(t, svc.UpdateContentSafe(ctx, testNoteID, "new"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, testNoteID, entry.ContextMap()["noteId"])
}

func TestUpdateSolved(t *testing.T) {
	repo := &mockNoteRepo{updateFn: affected(testNoteID)}
	svc, _ := newTestService(repo, nil)

	ok, err := svc.UpdateSolved(context.Background(), testNoteID, true)
	require.NoError(t, err)
	assert.True(t, ok)

	w := repo.updates[0][0]
	require.NotNil(t, w.Solved)
	assert.True(t, *w.Solved)
	assert.Nil(t, w.Note)
}

func TestCreateMany(t *testing.T) {
	ctx := context.Background()

	repo := &mockNoteRepo{upsertFn: affected("a", "b")}
	svc, _ := newTestService(repo, nil)

	ids, err := svc.CreateMany(ctx, []NoteEntry{{ProductID: testProductID, Note: "one"}, {ProductID: testProductID, Note: "two"}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
	require.Len(t, repo.upserts, 1, "one batch call")
	for _, w := range repo.upserts[0] {
		assert.Equal(t, domain.LiveVersionID, w.ProductVersionID)
		assert.Empty(t, w.ID)
	}

	svc, _ = newTestService(&mockNoteRepo{}, nil)
	ids, err = svc.CreateMany(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, ids)

	svc, logs := newTestService(&mockNoteRepo{upsertFn: failing(errStore)}, nil)
	_, err = svc.CreateMany(ctx, []NoteEntry{{ProductID: testProductID, Note: "x"}})
	assert.ErrorIs(t, err, errStore)
	assert.Zero(t, logs.Len())
}

func TestBulkUpsert(t *testing.T) {
	ctx := context.Background()
	existing := domain.NewID()
	fresh1, fresh2 := domain.NewID(), domain.NewID()
	at := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

	t.Run("partitions created and updated", func(t *testing.T) {
		repo := &mockNoteRepo{upsertFn: affected(existing, fresh1, fresh2)}
		svc, _ := newTestService(repo, nil)
		svc.now = func() time.Time { return at }

		res, err := svc.BulkUpsert(ctx, []BulkEntry{
			{ProductID: testProductID, Note: "new one"},
			{ID: existing, Note: "edited"},
			{ProductID: testProductID, Note: "new two"},
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{fresh1, fresh2}, res.Created)
		assert.Equal(t, []string{existing}, res.Updated)

		writes := repo.upserts[0]
		require.Len(t, writes, 3)
		assert.Equal(t, domain.LiveVersionID, writes[0].ProductVersionID)
		assert.Nil(t, writes[0].UpdatedAt)
		assert.Equal(t, existing, writes[1].ID)
		assert.Empty(t, writes[1].ProductID)
		require.NotNil(t, writes[1].UpdatedAt)
		assert.Equal(t, at, *writes[1].UpdatedAt)
	})

	t.Run("generated id colliding with an input id is classified as updated", func(t *testing.T) {
		// 存储层返回的新 ID 恰好等于输入中的更新 ID，分类依赖 ID 成员关系
		repo := &mockNoteRepo{upsertFn: affected(existing)}
		svc, _ := newTestService(repo, nil)

		res, err := svc.BulkUpsert(ctx, []BulkEntry{
			{ID: existing, Note: "edited"},
			{ProductID: testProductID, Note: "new"},
		})
		require.NoError(t, err)
		assert.Empty(t, res.Created)
		assert.Equal(t, []string{existing}, res.Updated)
	})

	t.Run("input ids are normalized", func(t *testing.T) {
		repo := &mockNoteRepo{upsertFn: affected(existing)}
		svc, _ := newTestService(repo, nil)

		res, err := svc.BulkUpsert(ctx, []BulkEntry{{ID: strings.ToUpper(existing), Note: "x"}})
		require.NoError(t, err)
		assert.Equal(t, []string{existing}, res.Updated)
		assert.Equal(t, existing, repo.upserts[0][0].ID)
	})

	t.Run("failure propagates", func(t *testing.T) {
		svc, logs := newTestService(&mockNoteRepo{upsertFn: failing(errStore)}, nil)
		res, err := svc.BulkUpsert(ctx, []BulkEntry{{ID: existing, Note: "x"}})
		assert.Nil(t, res)
		assert.ErrorIs(t, err, errStore)
		assert.Zero(t, logs.Len())
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	deleted := func(ids ...string) func(context.Context, []string) (*domain.WriteResult, error) {
		return func(context.Context, []string) (*domain.WriteResult, error) {
			r := domain.NewWriteResult()
			r.Add(domain.ProductNoteEntity, ids...)
			return r, nil
		}
	}

	svc, _ := newTestService(&mockNoteRepo{deleteFn: deleted(testNoteID)}, nil)
	assert.True(t, svc.Delete(ctx, testNoteID))

	svc, _ = newTestService(&mockNoteRepo{}, nil)
	assert.False(t, svc.Delete(ctx, testNoteID))

	svc, logs := newTestService(&mockNoteRepo{deleteFn: func(context.Context, []string) (*domain.WriteResult, error) {
		return nil, errStore
	}}, nil)
	assert.False(t, svc.Delete(ctx, testNoteID))
	assert.Zero(t, logs.Len(), "delete failures are swallowed without logging")
}

func TestDeleteMany(t *testing.T) {
	ctx := context.Background()

	repo := &mockNoteRepo{deleteFn: func(_ context.Context, ids []string) (*domain.WriteResult, error) {
		r := domain.NewWriteResult()
		r.Add(domain.ProductNoteEntity, ids[0])
		return r, nil
	}}
	svc, _ := newTestService(repo, nil)

	ids, err := svc.DeleteMany(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids)
	assert.Equal(t, [][]string{{"a", "b"}}, repo.deletes)

	svc, _ = newTestService(&mockNoteRepo{deleteFn: func(context.Context, []string) (*domain.WriteResult, error) {
		return nil, errStore
	}}, nil)
	_, err = svc.DeleteMany(ctx, []string{"a"})
	assert.ErrorIs(t, err, errStore)
}

func TestAddNoteToProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("inactive or missing product writes nothing", func(t *testing.T) {
		repo := &mockNoteRepo{}
		products := &mockProductRepo{}
		svc, _ := newTestService(repo, products)

		res, err := svc.AddNoteToProduct(ctx, testProductID, "hello")
		require.NoError(t, err)
		assert.Nil(t, res)
		assert.Empty(t, repo.upserts)

		c := products.searches[0]
		assert.Equal(t, []string{testProductID}, c.IDs)
		assert.Equal(t, []domain.Filter{domain.Equals("active", true)}, c.Filters)
	})

	t.Run("active product behaves like validated creation", func(t *testing.T) {
		repo := &mockNoteRepo{upsertFn: affected(testNoteID)}
		svc, _ := newTestService(repo, &mockProductRepo{products: []*domain.Product{{ID: testProductID, Active: true}}})

		res, err := svc.AddNoteToProduct(ctx, testProductID, " hello ")
		require.NoError(t, err)
		assert.Equal(t, testNoteID, res.ID)
		assert.Equal(t, "hello", *repo.upserts[0][0].Note)

		_, err = svc.AddNoteToProduct(ctx, testProductID, "  ")
		assert.ErrorIs(t, err, code.ErrorNoteEmpty)
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		lookupErr := domain.NewStoreError(domain.ProductEntity, "search", errors.New("down"))
		svc, _ := newTestService(&mockNoteRepo{}, &mockProductRepo{err: lookupErr})
		_, err := svc.AddNoteToProduct(ctx, testProductID, "x")
		assert.ErrorIs(t, err, lookupErr)
	})
}

func TestUpdateWithHistory(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)

	t.Run("absent note", func(t *testing.T) {
		repo := &mockNoteRepo{}
		svc, _ := newTestService(repo, nil)

		id, err := svc.UpdateWithHistory(ctx, testNoteID, "x")
		require.NoError(t, err)
		assert.Empty(t, id)
		assert.Empty(t, repo.upserts)
	})

	t.Run("overwrites and logs previous text", func(t *testing.T) {
		repo := &mockNoteRepo{
			searchFn: func(context.Context, *domain.Criteria) ([]*domain.ProductNote, error) {
				return []*domain.ProductNote{{ID: testNoteID, ProductID: testProductID, Note: "old text"}}, nil
			},
			upsertFn: affected(testNoteID),
		}
		svc, logs := newTestService(repo, nil)
		svc.now = func() time.Time { return at }

		id, err := svc.UpdateWithHistory(ctx, testNoteID, "new text")
		require.NoError(t, err)
		assert.Equal(t, testNoteID, id)

		assert.True(t, repo.searches[0].HasAssociation(domain.NoteProductAssociation))
		w := repo.upserts[0][0]
		assert.Equal(t, "new text", *w.Note)
		assert.Equal(t, at, *w.UpdatedAt)

		entries := logs.FilterMessage("product note overwritten, history not persisted").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "old text", fields["previousNote"])
		assert.NotEmpty(t, fields["patch"])
	})
}

func TestCreateValidatedCountsUnderItsOwnOperation(t *testing.T) {
	svc, _ := newTestService(&mockNoteRepo{upsertFn: affected(testNoteID)}, nil)

	validated := testutil.ToFloat64(noteWrites.WithLabelValues("create_validated", outcomeSuccess))
	plain := testutil.ToFloat64(noteWrites.WithLabelValues("create", outcomeSuccess))

	_, err := svc.CreateValidated(context.Background(), testProductID, "fine")
	require.NoError(t, err)

	assert.Equal(t, validated+1, testutil.ToFloat64(noteWrites.WithLabelValues("create_validated", outcomeSuccess)))
	assert.Equal(t, plain, testutil.ToFloat64(noteWrites.WithLabelValues("create", outcomeSuccess)))
}

func TestUpdateWithHistoryReturnsAffectedID(t *testing.T) {
	ctx := context.Background()
	found := func(context.Context, *domain.Criteria) ([]*domain.ProductNote, error) {
		return []*domain.ProductNote{{ID: testNoteID, ProductID: testProductID, Note: "old"}}, nil
	}

	t.Run("store reports nothing written", func(t *testing.T) {
		svc, logs := newTestService(&mockNoteRepo{searchFn: found}, nil)

		id, err := svc.UpdateWithHistory(ctx, testNoteID, "new")
		require.NoError(t, err)
		assert.Empty(t, id)
		assert.Zero(t, logs.FilterMessage("product note overwritten, history not persisted").Len())
	})

	t.Run("non-canonical input id", func(t *testing.T) {
		repo := &mockNoteRepo{searchFn: found, upsertFn: affected(testNoteID)}
		svc, _ := newTestService(repo, nil)

		id, err := svc.UpdateWithHistory(ctx, strings.ToUpper(testNoteID), "new")
		require.NoError(t, err)
		assert.Equal(t, testNoteID, id)
		assert.Equal(t, testNoteID, repo.upserts[0][0].ID)
	})
}
