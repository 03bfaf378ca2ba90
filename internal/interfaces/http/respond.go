package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
)

// ── Errores ───────────────────────────────────────────────────────────────────

// errorStatus traducción de errores de dominio a status HTTP y código de error.
var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrUserNotFound, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrAINotConfigured, fiber.StatusServiceUnavailable, "AI_UNAVAILABLE"},
	{domain.ErrStorageUnavailable, fiber.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
	{context.DeadlineExceeded, fiber.StatusRequestTimeout, "TIMEOUT"},
}

// respondError escribe el ErrorResponse correspondiente a err. Los errores no
// reconocidos se devuelven como 500 INTERNAL.
func respondError(c *fiber.Ctx, err error) error {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return c.Status(e.status).JSON(dto.ErrorResponse{Code: e.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// ── Validación ────────────────────────────────────────────────────────────────

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// validatorInstance configura el validador usando los nombres json/query/form en los errores.
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "query", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	})
	return validate
}

// validateStruct devuelve un mensaje legible del primer campo inválido, o "" si todo es correcto.
func validateStruct(v any) string {
	err := validatorInstance().Struct(v)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	return verrs[0].Field() + ": " + validationMessage(verrs[0])
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "campo obligatorio"
	case "email":
		return "email inválido"
	case "uuid":
		return "UUID inválido"
	case "oneof":
		return "debe ser uno de: " + e.Param()
	case "min", "gte":
		if e.Kind() == reflect.String {
			return "mínimo " + e.Param() + " caracteres"
		}
		return "mínimo " + e.Param()
	case "max", "lte":
		if e.Kind() == reflect.String {
			return "máximo " + e.Param() + " caracteres"
		}
		return "máximo " + e.Param()
	case "len":
		return "debe tener " + e.Param() + " caracteres"
	case "gt":
		return "debe ser mayor que " + e.Param()
	default:
		return "valor inválido"
	}
}

// parseBody decodifica el JSON del cuerpo y lo valida. Devuelve false si ya respondió con error.
func parseBody(c *fiber.Ctx, in any) (bool, error) {
	if err := c.BodyParser(in); err != nil {
		return false, badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if msg := validateStruct(in); msg != "" {
		return false, badRequest(c, "VALIDATION", msg)
	}
	return true, nil
}

// parseQuery decodifica y valida parámetros de query string.
func parseQuery(c *fiber.Ctx, in any) (bool, error) {
	if err := c.QueryParser(in); err != nil {
		return false, badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	if msg := validateStruct(in); msg != "" {
		return false, badRequest(c, "VALIDATION", msg)
	}
	return true, nil
}

// ── Archivos ──────────────────────────────────────────────────────────────────

// readUpload lee el archivo multipart field, como mucho maxSize bytes.
func readUpload(c *fiber.Ctx, field string, maxSize int64) (dto.UploadedFile, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return dto.UploadedFile{}, fmt.Errorf("%w: falta el archivo %q", domain.ErrInvalidInput, field)
	}
	if fh.Size > maxSize {
		return dto.UploadedFile{}, fmt.Errorf("%w: el archivo supera %d MB", domain.ErrInvalidInput, maxSize>>20)
	}
	data, err := readAll(fh, maxSize)
	if err != nil {
		return dto.UploadedFile{}, err
	}
	return dto.UploadedFile{
		Filename:    fh.Filename,
		ContentType: strings.ToLower(strings.TrimSpace(strings.SplitN(fh.Header.Get("Content-Type"), ";", 2)[0])),
		Data:        data,
	}, nil
}

func readAll(fh *multipart.FileHeader, maxSize int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxSize+1))
}

// sendFile responde con un adjunto binario.
func sendFile(c *fiber.Ctx, data []byte, contentType, filename string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
