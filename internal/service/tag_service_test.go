package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iemarche/inquiry-service/internal/domain"
	"github.com/iemarche/inquiry-service/internal/service"
)

func newTagFixture(t *testing.T, names ...string) (*service.TagService, []domain.Tag) {
	t.Helper()
	svc := service.NewTagService(newMemTagRepo())
	created := make([]domain.Tag, 0, len(names))
	for _, name := range names {
		tag, err := svc.Create(context.Background(), adminActor(), name)
		require.NoError(t, err)
		created = append(created, *tag)
	}
	return svc, created
}

func tagNames(tags []domain.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

func TestTagCreateAppendsToDisplayOrder(t *testing.T) {
	svc, created := newTagFixture(t, "平屋", "リノベーション", "二世帯住宅")

	require.Equal(t, 1, created[0].DisplayOrder)
	require.Equal(t, 2, created[1].DisplayOrder)
	require.Equal(t, 3, created[2].DisplayOrder)

	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"平屋", "リノベーション", "二世帯住宅"}, tagNames(listed))
}

func TestTagMoveSwapsWithNeighbor(t *testing.T) {
	svc, created := newTagFixture(t, "平屋", "リノベーション", "二世帯住宅")

	moved, err := svc.Move(context.Background(), adminActor(), created[2].ID, domain.MoveUp)
	require.NoError(t, err)
	require.Equal(t, 2, moved.DisplayOrder)

	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"平屋", "二世帯住宅", "リノベーション"}, tagNames(listed))

	// and back down
	_, err = svc.Move(context.Background(), adminActor(), created[2].ID, domain.MoveDown)
	require.NoError(t, err)
	listed, err = svc.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"平屋", "リノベーション", "二世帯住宅"}, tagNames(listed))
}

func TestTagMovePastEdgeFails(t *testing.T) {
	svc, created := newTagFixture(t, "平屋", "リノベーション")

	_, err := svc.Move(context.Background(), adminActor(), created[0].ID, domain.MoveUp)
	requireDomainError(t, err, "VALIDATION_FAILED")

	_, err = svc.Move(context.Background(), adminActor(), created[1].ID, domain.MoveDown)
	requireDomainError(t, err, "VALIDATION_FAILED")

	_, err = svc.Move(context.Background(), adminActor(), created[0].ID, "SIDEWAYS")
	requireDomainError(t, err, "VALIDATION_FAILED")
}

func TestTagMutationsAreAdminOnly(t *testing.T) {
	svc, created := newTagFixture(t, "平屋")
	companyID := int64(1)

	_, err := svc.Create(context.Background(), memberActor(companyID), "増築")
	requireDomainError(t, err, "FORBIDDEN")

	_, err = svc.Rename(context.Background(), customerActor(7), created[0].ID, "平屋建て")
	requireDomainError(t, err, "FORBIDDEN")

	err = svc.Delete(context.Background(), memberActor(companyID), created[0].ID)
	requireDomainError(t, err, "FORBIDDEN")

	_, err = svc.Move(context.Background(), customerActor(7), created[0].ID, domain.MoveUp)
	requireDomainError(t, err, "FORBIDDEN")
}

func TestTagRenameKeepsPosition(t *testing.T) {
	svc, created := newTagFixture(t, "平屋", "リノベーション")

	renamed, err := svc.Rename(context.Background(), adminActor(), created[0].ID, "平屋建て")
	require.NoError(t, err)
	require.Equal(t, created[0].DisplayOrder, renamed.DisplayOrder)

	_, err = svc.Rename(context.Background(), adminActor(), created[0].ID, "   ")
	requireDomainError(t, err, "VALIDATION_FAILED")

	_, err = svc.Rename(context.Background(), adminActor(), 999, "欠番")
	requireDomainError(t, err, "NOT_FOUND")
}

func TestTagDelete(t *testing.T) {
	svc, created := newTagFixture(t, "平屋", "リノベーション")

	require.NoError(t, svc.Delete(context.Background(), adminActor(), created[0].ID))
	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"リノベーション"}, tagNames(listed))

	err = svc.Delete(context.Background(), adminActor(), created[0].ID)
	requireDomainError(t, err, "NOT_FOUND")
}
