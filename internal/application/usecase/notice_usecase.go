package usecase

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/events"
	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
	"github.com/jhoicas/vanbuilder-api/pkg/llmjson"
	"github.com/jhoicas/vanbuilder-api/pkg/textnorm"
)

// MaxNoticeSize tamaño máximo de una notice subida.
const MaxNoticeSize = 20 << 20

const noticeIndexPrompt = `Tu reçois la notice technique d'un équipement de camping-car ou de fourgon aménagé.
Retourne UNIQUEMENT un objet JSON (sans markdown) de la forme :
{"text": "<texte intégral de la notice, sans mise en forme>", "keywords": ["<mot-clé>", "..."]}
Les mots-clés (10 au maximum) décrivent le type d'équipement, ses caractéristiques et les opérations d'entretien.`

// noticeContentTypes tipos admitidos para notices.
var noticeContentTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
}

// NoticeUseCase notices técnicas: subida, indexación por IA y búsqueda de texto completo.
type NoticeUseCase struct {
	repo      repository.NoticeRepository
	storage   ports.ObjectStorage
	ai        ports.AIResolver
	aiTimeout time.Duration
	notifier  *events.Notifier
}

// NewNoticeUseCase construye el caso de uso.
func NewNoticeUseCase(
	repo repository.NoticeRepository,
	storage ports.ObjectStorage,
	ai ports.AIResolver,
	aiTimeout time.Duration,
	notifier *events.Notifier,
) *NoticeUseCase {
	return &NoticeUseCase{repo: repo, storage: storage, ai: ai, aiTimeout: aiTimeout, notifier: notifier}
}

// Upload guarda el archivo en el almacenamiento y crea la notice sin indexar (admin).
func (uc *NoticeUseCase) Upload(ctx context.Context, in dto.UploadNoticeInput) (*dto.NoticeResponse, error) {
	title := strings.TrimSpace(in.Title)
	ext, ok := noticeContentTypes[in.ContentType]
	if title == "" || !ok || len(in.Data) == 0 || len(in.Data) > MaxNoticeSize {
		return nil, domain.ErrInvalidInput
	}
	lang := strings.ToLower(in.Language)
	if lang == "" {
		lang = "fr"
	}
	now := time.Now()
	n := &entity.Notice{
		ID:          uuid.New().String(),
		AccessoryID: in.AccessoryID,
		Title:       title,
		Brand:       in.Brand,
		Language:    lang,
		ContentType: in.ContentType,
		Keywords:    []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	n.FileKey = fmt.Sprintf("notices/%s/%s%s", n.ID, fileStem(in.Filename, "notice"), ext)
	if err := uc.storage.Put(ctx, n.FileKey, n.ContentType, in.Data); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		_ = uc.storage.Delete(context.WithoutCancel(ctx), n.FileKey)
		return nil, err
	}
	uc.notifier.Changed(ctx, "notices", entity.ChangeInsert, n.ID, "", "")
	return ToNoticeResponse(n), nil
}

// Get devuelve una notice.
func (uc *NoticeUseCase) Get(ctx context.Context, id string) (*dto.NoticeResponse, error) {
	n, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToNoticeResponse(n), nil
}

// List devuelve las notices paginadas.
func (uc *NoticeUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.NoticeResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NoticeResponse, 0, len(list))
	for _, n := range list {
		out = append(out, *ToNoticeResponse(n))
	}
	return out, nil
}

// Update modifica los metadatos (admin).
func (uc *NoticeUseCase) Update(ctx context.Context, id string, in dto.UpdateNoticeRequest) (*dto.NoticeResponse, error) {
	n, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, domain.ErrInvalidInput
		}
		n.Title = title
	}
	if in.AccessoryID != nil {
		n.AccessoryID = *in.AccessoryID
	}
	if in.Brand != nil {
		n.Brand = *in.Brand
	}
	if in.Language != nil {
		n.Language = strings.ToLower(*in.Language)
	}
	if in.Keywords != nil {
		n.Keywords = cleanKeywords(in.Keywords)
	}
	n.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	uc.notifier.Changed(ctx, "notices", entity.ChangeUpdate, n.ID, "", "")
	return ToNoticeResponse(n), nil
}

// Delete elimina la notice y su archivo (admin). Un archivo ya inexistente no es error.
func (uc *NoticeUseCase) Delete(ctx context.Context, id string) error {
	n, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, n.ID); err != nil {
		return err
	}
	if err := uc.storage.Delete(ctx, n.FileKey); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	uc.notifier.Changed(ctx, "notices", entity.ChangeDelete, n.ID, "", "")
	return nil
}

// Index envía el archivo al modelo de visión, guarda el texto extraído y las palabras clave
// y marca la notice como indexada (admin).
func (uc *NoticeUseCase) Index(ctx context.Context, actor dto.Actor, id string) (*dto.NoticeResponse, error) {
	n, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	model, err := uc.ai.Resolve(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	data, err := uc.storage.Get(ctx, n.FileKey)
	if err != nil {
		return nil, err
	}

	aiCtx, cancel := context.WithTimeout(ctx, uc.aiTimeout)
	defer cancel()
	raw, err := model.Vision(aiCtx, noticeIndexPrompt, n.ContentType, data)
	if err != nil {
		return nil, fmt.Errorf("indexar notice: %w", err)
	}
	var parsed struct {
		Text     string   `json:"text"`
		Keywords []string `json:"keywords"`
	}
	if err := llmjson.Decode(raw, &parsed); err != nil {
		// Algunos modelos devuelven el texto sin envolver en JSON.
		parsed.Text = llmjson.StripFences(raw)
	}
	n.Content = strings.TrimSpace(parsed.Text)
	n.Keywords = cleanKeywords(parsed.Keywords)
	n.Indexed = true
	if err := uc.repo.SetIndex(ctx, n.ID, n.Content, n.Keywords); err != nil {
		return nil, err
	}
	uc.notifier.Changed(ctx, "notices", entity.ChangeUpdate, n.ID, "", "")
	return ToNoticeResponse(n), nil
}

// Search busca en título, marca, texto y palabras clave (búsqueda de texto completo en francés).
func (uc *NoticeUseCase) Search(ctx context.Context, query string, limit int) ([]dto.NoticeSearchHit, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	tsq := textnorm.TSQuery(query)
	if tsq == "" {
		return []dto.NoticeSearchHit{}, nil
	}
	hits, err := uc.repo.Search(ctx, tsq, limit)
	if err != nil {
		return nil, err
	}
	tokens := textnorm.Tokens(query)
	out := make([]dto.NoticeSearchHit, 0, len(hits))
	for _, h := range hits {
		out = append(out, dto.NoticeSearchHit{
			NoticeResponse: *ToNoticeResponse(h.Notice),
			Rank:           h.Rank,
			Excerpt:        Excerpt(h.Notice.Content, tokens, 240),
		})
	}
	return out, nil
}

// Download devuelve una URL prefirmada del archivo.
func (uc *NoticeUseCase) Download(ctx context.Context, id string) (*dto.DownloadResponse, error) {
	n, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	url, exp, err := uc.storage.PresignGet(ctx, n.FileKey)
	if err != nil {
		return nil, err
	}
	return &dto.DownloadResponse{URL: url, ExpiresAt: exp}, nil
}

func (uc *NoticeUseCase) load(ctx context.Context, id string) (*entity.Notice, error) {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	return n, nil
}

// Excerpt devuelve hasta size runas de content alrededor del primer token encontrado.
func Excerpt(content string, tokens []string, size int) string {
	if content == "" {
		return ""
	}
	runes := []rune(content)
	folded := []rune(textnorm.Fold(content))
	start := 0
	if len(folded) == len(runes) {
		for _, tok := range tokens {
			if i := strings.Index(string(folded), tok); i >= 0 {
				start = utf8.RuneCountInString(string(folded)[:i])
				break
			}
		}
	}
	start = max(start-size/4, 0)
	end := start + size
	if end > len(runes) {
		end = len(runes)
	}
	out := strings.TrimSpace(string(runes[start:end]))
	if start > 0 {
		out = "…" + out
	}
	if end < len(runes) {
		out += "…"
	}
	return out
}

func cleanKeywords(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, k := range in {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
		if len(out) == 20 {
			break
		}
	}
	return out
}

// fileStem devuelve el nombre base sin extensión, reducido a un slug; def si queda vacío.
func fileStem(filename, def string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	if s := textnorm.Slug(base); s != "" {
		return s
	}
	return def
}

// ToNoticeResponse convierte la notice a DTO.
func ToNoticeResponse(n *entity.Notice) *dto.NoticeResponse {
	kw := n.Keywords
	if kw == nil {
		kw = []string{}
	}
	return &dto.NoticeResponse{
		ID:          n.ID,
		AccessoryID: n.AccessoryID,
		Title:       n.Title,
		Brand:       n.Brand,
		Language:    n.Language,
		ContentType: n.ContentType,
		Keywords:    kw,
		Indexed:     n.Indexed,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}
