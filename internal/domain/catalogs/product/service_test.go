package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	byID   map[id.ID]*Product
	byCode map[string]*Product
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:   make(map[id.ID]*Product),
		byCode: make(map[string]*Product),
	}
}

func (r *fakeRepo) Create(_ context.Context, p *Product) error {
	cp := *p
	r.byID[p.ID] = &cp
	r.byCode[p.Code] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, productID id.ID) (*Product, error) {
	p, ok := r.byID[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) GetByCode(_ context.Context, code string) (*Product, error) {
	p, ok := r.byCode[code]
	if !ok {
		return nil, apperror.NewNotFound("product", code)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) Update(_ context.Context, p *Product) error {
	existing, ok := r.byID[p.ID]
	if !ok {
		return apperror.NewNotFound("product", p.ID)
	}
	cp := *p
	cp.Version = existing.Version + 1
	r.byID[p.ID] = &cp
	r.byCode[p.Code] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, productID id.ID) error {
	p, ok := r.byID[productID]
	if !ok {
		return apperror.NewNotFound("product", productID)
	}
	delete(r.byCode, p.Code)
	delete(r.byID, productID)
	return nil
}

func (r *fakeRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	return r.ListFiltered(context.Background(), ListFilter{ListFilter: filter})
}

func (r *fakeRepo) ListFiltered(_ context.Context, filter ListFilter) (domain.ListResult[*Product], error) {
	var items []*Product
	for _, p := range r.byID {
		if filter.MaterialType != "" && p.MaterialType != filter.MaterialType {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		cp := *p
		items = append(items, &cp)
	}
	return domain.ListResult[*Product]{Items: items, TotalCount: int64(len(items))}, nil
}

func (r *fakeRepo) Exists(_ context.Context, productID id.ID) (bool, error) {
	_, ok := r.byID[productID]
	return ok, nil
}

func (r *fakeRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	_, ok := r.byCode[code]
	return ok, nil
}

// fakeRecorder records routed stock changes without a real ledger.
type fakeRecorder struct {
	repo    *fakeRepo
	initial []int64
	sets    []int64
}

func (f *fakeRecorder) RecordInitialStock(_ context.Context, _ id.ID, quantity int64) error {
	f.initial = append(f.initial, quantity)
	return nil
}

func (f *fakeRecorder) SetStock(_ context.Context, productID id.ID, quantity int64, _ string) error {
	f.sets = append(f.sets, quantity)
	if p, ok := f.repo.byID[productID]; ok {
		p.CurrentStock = quantity
	}
	return nil
}

func newTestService() (*Service, *fakeRepo, *fakeRecorder) {
	repo := newFakeRepo()
	rec := &fakeRecorder{repo: repo}
	return NewService(repo, fakeTxManager{}, rec), repo, rec
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("opening stock is recorded", func(t *testing.T) {
		svc, repo, rec := newTestService()

		p := New("STEEL-01", "Steel plate 3mm")
		p.CurrentStock = 120
		p.UnitPrice = decimal.RequireFromString("45.90")

		require.NoError(t, svc.Create(ctx, p))
		assert.Equal(t, []int64{120}, rec.initial)
		assert.Equal(t, int64(120), repo.byID[p.ID].CurrentStock)
	})

	t.Run("zero stock writes no entry", func(t *testing.T) {
		svc, _, rec := newTestService()

		require.NoError(t, svc.Create(ctx, New("STEEL-02", "Steel plate 5mm")))
		assert.Empty(t, rec.initial)
	})

	t.Run("duplicate code rejected", func(t *testing.T) {
		svc, _, _ := newTestService()

		require.NoError(t, svc.Create(ctx, New("STEEL-01", "Steel plate 3mm")))

		err := svc.Create(ctx, New("STEEL-01", "Another plate"))
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		svc, _, _ := newTestService()

		p := New("STEEL-03", "Steel plate")
		p.UnitPrice = decimal.NewFromInt(-1)

		err := svc.Create(ctx, p)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("stock change routes through the recorder", func(t *testing.T) {
		svc, repo, rec := newTestService()

		p := New("STEEL-01", "Steel plate 3mm")
		p.CurrentStock = 20
		require.NoError(t, svc.Create(ctx, p))

		p.Name = "Steel plate 3mm (cut)"
		p.CurrentStock = 35
		require.NoError(t, svc.Update(ctx, p))

		assert.Equal(t, []int64{35}, rec.sets)
		assert.Equal(t, int64(35), repo.byID[p.ID].CurrentStock)
		assert.Equal(t, "Steel plate 3mm (cut)", repo.byID[p.ID].Name)
	})

	t.Run("unchanged stock skips the recorder", func(t *testing.T) {
		svc, _, rec := newTestService()

		p := New("STEEL-02", "Steel plate 5mm")
		p.CurrentStock = 20
		require.NoError(t, svc.Create(ctx, p))

		p.Location = "A-12"
		require.NoError(t, svc.Update(ctx, p))
		assert.Empty(t, rec.sets)
	})
}

func TestEvaluateStatus(t *testing.T) {
	p := New("X", "x")
	assert.Equal(t, StatusActive, p.Status)
	assert.True(t, StatusDiscontinued.Valid())
	assert.False(t, Status("retired").Valid())
}

func TestListFiltered(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	steel := New("S-1", "Steel")
	steel.MaterialType = "steel"
	copper := New("C-1", "Copper")
	copper.MaterialType = "copper"
	copper.Status = StatusDiscontinued

	require.NoError(t, svc.Create(ctx, steel))
	require.NoError(t, svc.Create(ctx, copper))

	res, err := svc.ListFiltered(ctx, ListFilter{MaterialType: "steel"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "S-1", res.Items[0].Code)

	res, err = svc.ListFiltered(ctx, ListFilter{Status: StatusDiscontinued})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "C-1", res.Items[0].Code)
}
