package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntity_SoftDelete(t *testing.T) {
	e := Entity{}
	now := time.Now()

	e.SoftDelete(now)

	assert.True(t, e.IsDeleted)
	require.NotNil(t, e.DeletedAt)
	assert.Equal(t, now, *e.DeletedAt)
}

func TestEntity_SoftDelete_Idempotent(t *testing.T) {
	e := Entity{}
	first := time.Now()
	e.SoftDelete(first)

	// A second call leaves the record in an equivalent state.
	e.SoftDelete(first.Add(time.Minute))

	assert.True(t, e.IsDeleted)
	require.NotNil(t, e.DeletedAt)
}

func TestEntity_BeforeCreate(t *testing.T) {
	tests := []struct {
		name   string
		entity Entity
		wantID func(t *testing.T, id uuid.UUID)
	}{
		{
			name:   "assigns id when zero",
			entity: Entity{},
			wantID: func(t *testing.T, id uuid.UUID) {
				assert.NotEqual(t, uuid.Nil, id)
			},
		},
		{
			name:   "keeps pre-assigned id",
			entity: Entity{ID: uuid.MustParse("7f9c24e5-2f14-4fe0-a6a3-3cdbd7c9f2b1")},
			wantID: func(t *testing.T, id uuid.UUID) {
				assert.Equal(t, "7f9c24e5-2f14-4fe0-a6a3-3cdbd7c9f2b1", id.String())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.entity.BeforeCreate(nil))
			tt.wantID(t, tt.entity.ID)
			assert.Equal(t, 1, tt.entity.Version)
		})
	}
}

func TestEntity_BeforeUpdate_BumpsVersion(t *testing.T) {
	e := Entity{Version: 1}

	require.NoError(t, e.BeforeUpdate(nil))
	require.NoError(t, e.BeforeUpdate(nil))

	assert.Equal(t, 3, e.Version)
}
