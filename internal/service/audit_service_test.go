package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-wizard-api/internal/dto"
	"github.com/noah-isme/timetable-wizard-api/internal/models"
	appErrors "github.com/noah-isme/timetable-wizard-api/pkg/errors"
)

type memoryCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	gets    int
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	raw, ok := m.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.items[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *memoryCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.items {
		if strings.HasPrefix(key, prefix) {
			delete(m.items, key)
		}
	}
	return nil
}

const sampleLoadReport = "T1;MAT;Ortaokul;Matematik;C1;45\nT1;MAT;Ortaokul;Matematik;C2;3\nT1;BR;ORTAOKUL;MATH\n"

func TestAuditServiceAuditReport(t *testing.T) {
	svc := NewAuditService(nil, NewMetricsService(), nil, AuditConfig{Policy: DefaultAuditPolicy()})

	report, err := svc.AuditReport(context.Background(), []byte(sampleLoadReport))
	require.NoError(t, err)
	assert.Equal(t, 2, report.RecordCount)
	assert.Equal(t, 1, report.SkippedCount)
	require.Len(t, report.Feasibility, 2)
	assert.Equal(t, models.LoadStatusImpossible, report.Feasibility[0].Status)
	assert.Equal(t, models.LoadStatusOK, report.Feasibility[1].Status)
}

func TestAuditServiceRejectsEmptyReport(t *testing.T) {
	svc := NewAuditService(nil, nil, nil, AuditConfig{})
	_, err := svc.AuditReport(context.Background(), []byte("  \n"))
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestAuditServiceUsesCache(t *testing.T) {
	repo := newMemoryCache()
	cache := NewCacheService(repo, nil, time.Minute, nil, true)
	svc := NewAuditService(cache, nil, nil, AuditConfig{Policy: DefaultAuditPolicy()})
	ctx := context.Background()

	first, err := svc.AuditReport(ctx, []byte(sampleLoadReport))
	require.NoError(t, err)
	require.Len(t, repo.items, 1)
	for key := range repo.items {
		assert.True(t, strings.HasPrefix(key, auditCachePrefix))
	}

	second, err := svc.AuditReport(ctx, []byte(sampleLoadReport))
	require.NoError(t, err)
	assert.Equal(t, first.Feasibility, second.Feasibility)
	assert.Equal(t, 2, repo.gets)

	other := NewAuditService(cache, nil, nil, AuditConfig{Policy: AuditPolicy{WeeklyCap: 40}})
	_, err = other.AuditReport(ctx, []byte(sampleLoadReport))
	require.NoError(t, err)
	assert.Len(t, repo.items, 2)

	require.NoError(t, svc.PurgeCache(ctx))
	assert.Empty(t, repo.items)
	assert.Equal(t, []string{auditCachePrefix + "*"}, repo.deleted)
}

func TestAuditServiceExport(t *testing.T) {
	svc := NewAuditService(nil, nil, nil, AuditConfig{Policy: DefaultAuditPolicy()})
	ctx := context.Background()

	cases := []struct {
		format      string
		contentType string
		filename    string
		check       func(t *testing.T, body []byte)
	}{
		{"", "application/json", "load-audit.json", func(t *testing.T, body []byte) {
			var report models.LoadAuditReport
			require.NoError(t, json.Unmarshal(body, &report))
			assert.Equal(t, 2, report.RecordCount)
		}},
		{dto.AuditFormatText, "text/plain; charset=utf-8", "load-audit.txt", func(t *testing.T, body []byte) {
			assert.Contains(t, string(body), "IMPOSSIBLE")
		}},
		{dto.AuditFormatCSV, "text/csv", "load-audit.csv", func(t *testing.T, body []byte) {
			lines := strings.Split(strings.TrimSpace(string(body)), "\n")
			assert.Equal(t, "Kapsam;Öğretmen;Sınıf;Saat;Sınır;Durum", lines[0])
			assert.Contains(t, lines, "öğretmen/sınıf;T1;C1;45;15;IMPOSSIBLE")
		}},
		{dto.AuditFormatPDF, "application/pdf", "load-audit.pdf", func(t *testing.T, body []byte) {
			assert.True(t, strings.HasPrefix(string(body), "%PDF"))
		}},
	}
	for _, tc := range cases {
		t.Run("format "+tc.format, func(t *testing.T) {
			out, err := svc.Export(ctx, []byte(sampleLoadReport), tc.format)
			require.NoError(t, err)
			assert.Equal(t, tc.contentType, out.ContentType)
			assert.Equal(t, tc.filename, out.Filename)
			tc.check(t, out.Body)
		})
	}

	_, err := svc.Export(ctx, []byte(sampleLoadReport), "xml")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}
