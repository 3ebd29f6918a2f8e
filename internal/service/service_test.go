package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"go-variant-cache/internal/cache/session"
	"go-variant-cache/internal/interfaces"
	"go-variant-cache/internal/interfaces/mock"
	"go-variant-cache/internal/models"
	"go-variant-cache/internal/prefetch"
)

func testProduct() models.Product {
	return models.Product{
		ID:  "p1",
		URL: "/products/shirt",
		Dimensions: []models.Dimension{
			{Name: "Color", Values: []models.OptionValue{
				{ID: "red-1", Label: "Red", Available: true, Selected: true},
				{ID: "blue-2", Label: "Blue", Available: true},
			}},
			{Name: "Size", Values: []models.OptionValue{
				{ID: "m-7", Label: "M", Available: true, Selected: true},
				{ID: "l-8", Label: "L", Available: true},
			}},
		},
	}
}

func initialMarkup() []byte {
	return []byte(`<html><body><main id="MainContent">
<variant-picker data-product-id="p1"><input value="red-1"></variant-picker>
<script type="application/json" data-variant-state>{"variant_id":"v-1","product_id":"p1","product_url":"/products/shirt","available":true}</script>
</main></body></html>`)
}

func fragmentBody(variantID string) []byte {
	return []byte(fmt.Sprintf(`<html><body><main id="MainContent">
<variant-picker data-product-id="p1"><input value="x"></variant-picker>
<script type="application/json" data-variant-state>{"variant_id":%q,"product_id":"p1","product_url":"/products/shirt","available":true}</script>
</main></body></html>`, variantID))
}

func testCaps() prefetch.Capabilities {
	caps := prefetch.DefaultCapabilities()
	caps.IdleDelay = 10 * time.Millisecond
	caps.FallbackDelay = 10 * time.Millisecond
	caps.PostChangeDelay = 10 * time.Millisecond
	caps.HoverSettleDelay = 10 * time.Millisecond
	return caps
}

func newTestManager(t *testing.T, tr interfaces.Transport) *Manager {
	t.Helper()
	m := NewManager(
		tr,
		func() interfaces.FragmentStore { return session.New(50, zap.NewNop()) },
		testCaps(),
		zap.NewNop(),
	)
	t.Cleanup(m.StopAll)
	return m
}

func TestManager_CreateStartsAttachPass(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tr := mock.NewMockTransport(ctrl)
	// The attach pass prefetches the only eligible color candidate.
	tr.EXPECT().
		Fetch(gomock.Any(), "/products/shirt?option_values=blue-2,m-7").
		Return(fragmentBody("v-blue"), nil).
		Times(1)

	m := newTestManager(t, tr)
	s, err := m.Create(testProduct(), initialMarkup(), false)
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 1, m.Len())

	assert.Eventually(t, func() bool {
		return s.CacheLen() == 2 // snapshot of the current page + the candidate
	}, time.Second, 5*time.Millisecond)
}

func TestManager_Create_InvalidProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newTestManager(t, mock.NewMockTransport(ctrl))
	_, err := m.Create(models.Product{ID: "empty"}, nil, false)
	assert.Error(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestSession_SelectServedFromWarmCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tr := mock.NewMockTransport(ctrl)
	tr.EXPECT().
		Fetch(gomock.Any(), "/products/shirt?option_values=blue-2,m-7").
		Return(fragmentBody("v-blue"), nil).
		Times(1)

	m := newTestManager(t, tr)
	s, err := m.Create(testProduct(), initialMarkup(), false)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return s.CacheLen() == 2
	}, time.Second, 5*time.Millisecond)

	// The color change hits the warm cache: no second fetch expectation.
	require.NoError(t, s.Select(context.Background(), "blue-2"))

	state := s.State()
	assert.Equal(t, "v-blue", state.VariantParam)
	assert.Contains(t, state.Markup, `<input value="x">`)
}

func TestSession_SelectNonColorFetches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tr := mock.NewMockTransport(ctrl)
	// The attach pass and the post-change pass warm color candidates around
	// the selection itself; answer by key.
	tr.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, url string) ([]byte, error) {
			if url == "/products/shirt?option_values=red-1,l-8" {
				return fragmentBody("v-2"), nil
			}
			return fragmentBody("v-blue"), nil
		}).
		AnyTimes()

	m := newTestManager(t, tr)
	s, err := m.Create(testProduct(), initialMarkup(), false)
	require.NoError(t, err)

	require.NoError(t, s.Select(context.Background(), "l-8"))
	assert.Equal(t, "v-2", s.State().VariantParam)
}

func TestManager_DeleteStopsAndClears(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tr := mock.NewMockTransport(ctrl)
	tr.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(fragmentBody("v-blue"), nil).AnyTimes()

	m := newTestManager(t, tr)
	s, err := m.Create(testProduct(), initialMarkup(), false)
	require.NoError(t, err)

	assert.True(t, m.Delete(s.ID))
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, s.CacheLen(), "session cache is cleared on teardown")

	_, found := m.Get(s.ID)
	assert.False(t, found)
	assert.False(t, m.Delete(s.ID), "double delete reports false")
}

func TestManager_StopAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tr := mock.NewMockTransport(ctrl)
	tr.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(fragmentBody("v-blue"), nil).AnyTimes()

	m := newTestManager(t, tr)
	_, err := m.Create(testProduct(), initialMarkup(), false)
	require.NoError(t, err)
	_, err = m.Create(testProduct(), initialMarkup(), true)
	require.NoError(t, err)

	m.StopAll()
	assert.Equal(t, 0, m.Len())
}
