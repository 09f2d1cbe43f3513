package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestListService_ListByCategory(t *testing.T) {
	svc, _, index, _, _ := newTestMediaService(t)

	older := domain.MediaRecord{Filename: "1-a.png", Category: domain.CategorySocial, UploadedAt: fixedNow.Add(-time.Hour)}
	newer := domain.MediaRecord{Filename: "2-b.png", Category: domain.CategorySocial, UploadedAt: fixedNow}
	index.EXPECT().List(gomock.Any()).Return([]domain.MediaRecord{older, newer}, nil)

	groups, err := svc.ListByCategory(context.Background())
	require.NoError(t, err)

	require.Len(t, groups[domain.CategorySocial], 2)
	assert.Equal(t, "2-b.png", groups[domain.CategorySocial][0].Filename)
	assert.Equal(t, "1-a.png", groups[domain.CategorySocial][1].Filename)

	institution, ok := groups[domain.CategoryInstitution]
	assert.True(t, ok)
	assert.NotNil(t, institution)
	assert.Empty(t, institution)
}

func TestListService_IndexFailure(t *testing.T) {
	svc, _, index, _, _ := newTestMediaService(t)
	index.EXPECT().List(gomock.Any()).Return(nil, errors.New("timeout"))

	groups, err := svc.ListByCategory(context.Background())
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Nil(t, groups)
}
