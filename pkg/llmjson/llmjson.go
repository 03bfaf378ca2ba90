// Package llmjson extrae objetos JSON de respuestas de modelos de lenguaje,
// que a menudo los envuelven en bloques markdown o texto adicional.
package llmjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoJSON la respuesta no contiene ningún objeto JSON.
var ErrNoJSON = errors.New("llmjson: no se encontró JSON en la respuesta")

// jsonBlockRe captura desde el primer '{' hasta el último '}'.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// StripFences elimina un bloque de código markdown (```json … ``` o ``` … ```) y espacios.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	idx := strings.Index(text, "```")
	if idx == -1 {
		return text
	}
	after := text[idx+3:]
	if nl := strings.Index(after, "\n"); nl != -1 {
		after = after[nl+1:]
	}
	if end := strings.LastIndex(after, "```"); end != -1 {
		after = after[:end]
	}
	return strings.TrimSpace(after)
}

// Extract devuelve el primer objeto JSON del texto, o "" si no hay.
func Extract(text string) string {
	text = StripFences(text)
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}

// Decode extrae el objeto JSON del texto y lo decodifica en v.
func Decode(text string, v any) error {
	raw := Extract(text)
	if raw == "" {
		return ErrNoJSON
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("llmjson: %w", err)
	}
	return nil
}
