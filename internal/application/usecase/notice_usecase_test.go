package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/testutil/fakes"
	"github.com/jhoicas/vanbuilder-api/internal/testutil/memrepo"
)

func TestNotice_UploadIndexSearch(t *testing.T) {
	ctx := context.Background()
	repo := memrepo.NewNotices()
	storage := fakes.NewStorage()
	model := &fakes.Model{Replies: []string{
		"```json\n{\"text\": \"Batterie lithium LiFePO4 200Ah. Charger à 14,2 V maximum.\", \"keywords\": [\"Batterie\", \"lithium\", \"batterie\", \" \"]}\n```",
	}}
	uc := NewNoticeUseCase(repo, storage, fakes.Resolver{Model: model}, time.Second, nil)

	n, err := uc.Upload(ctx, dto.UploadNoticeInput{
		Title:       "  Victron Smart Lithium ",
		Brand:       "Victron",
		Filename:    `C:\docs\Manuel Victron.pdf`,
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.7"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Victron Smart Lithium", n.Title)
	assert.Equal(t, "fr", n.Language)
	assert.False(t, n.Indexed)
	assert.Contains(t, storage.Objects, "notices/"+n.ID+"/manuel-victron.pdf")

	indexed, err := uc.Index(ctx, adminActor, n.ID)
	require.NoError(t, err)
	assert.True(t, indexed.Indexed)
	assert.Equal(t, []string{"batterie", "lithium"}, indexed.Keywords)
	assert.Equal(t, []string{"application/pdf"}, model.MimeTypes)

	hits, err := uc.Search(ctx, "comment charger la batterie ?", 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, n.ID, hits[0].ID)
	assert.Contains(t, hits[0].Excerpt, "Charger")

	empty, err := uc.Search(ctx, "le la de", 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestNotice_UploadRejectsBadInput(t *testing.T) {
	uc := NewNoticeUseCase(memrepo.NewNotices(), fakes.NewStorage(), fakes.Resolver{}, time.Second, nil)
	ctx := context.Background()

	for _, in := range []dto.UploadNoticeInput{
		{Title: "x", ContentType: "text/plain", Data: []byte("a")},
		{Title: " ", ContentType: "application/pdf", Data: []byte("a")},
		{Title: "x", ContentType: "application/pdf"},
		{Title: "x", ContentType: "application/pdf", Data: make([]byte, MaxNoticeSize+1)},
	} {
		_, err := uc.Upload(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestNotice_IndexWithoutAI(t *testing.T) {
	repo := memrepo.NewNotices(&entity.Notice{ID: "n1", Title: "Frigo", FileKey: "notices/n1/f.pdf", ContentType: "application/pdf"})
	uc := NewNoticeUseCase(repo, fakes.NewStorage(), fakes.Resolver{}, time.Second, nil)

	_, err := uc.Index(context.Background(), adminActor, "n1")
	assert.ErrorIs(t, err, domain.ErrAINotConfigured)
}

func TestNotice_IndexPlainTextReply(t *testing.T) {
	ctx := context.Background()
	storage := fakes.NewStorage()
	require.NoError(t, storage.Put(ctx, "notices/n1/f.pdf", "application/pdf", []byte("pdf")))
	repo := memrepo.NewNotices(&entity.Notice{ID: "n1", Title: "Chauffage", FileKey: "notices/n1/f.pdf", ContentType: "application/pdf"})
	model := &fakes.Model{Replies: []string{"Chauffage diesel 2 kW, purge annuelle."}}
	uc := NewNoticeUseCase(repo, storage, fakes.Resolver{Model: model}, time.Second, nil)

	_, err := uc.Index(ctx, adminActor, "n1")
	require.NoError(t, err)
	stored, err := repo.GetByID(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "Chauffage diesel 2 kW, purge annuelle.", stored.Content)
	assert.Empty(t, stored.Keywords)
}

func TestNotice_DeleteToleratesMissingFile(t *testing.T) {
	repo := memrepo.NewNotices(&entity.Notice{ID: "n1", Title: "x", FileKey: "notices/n1/gone.pdf"})
	uc := NewNoticeUseCase(repo, fakes.NewStorage(), fakes.Resolver{}, time.Second, nil)

	require.NoError(t, uc.Delete(context.Background(), "n1"))
	_, err := uc.Get(context.Background(), "n1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExcerpt(t *testing.T) {
	content := strings.Repeat("x", 100) + " Régulateur MPPT " + strings.Repeat("y", 100)
	out := Excerpt(content, []string{"regulateur"}, 40)
	assert.True(t, strings.HasPrefix(out, "…"))
	assert.True(t, strings.HasSuffix(out, "…"))
	assert.Contains(t, out, "Régulateur")

	assert.Equal(t, "court", Excerpt("court", []string{"absent"}, 40))
	assert.Equal(t, "", Excerpt("", nil, 40))
}
