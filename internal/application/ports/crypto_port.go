package ports

// SecretSealer cifra y descifra secretos guardados en base de datos (API keys de usuario).
type SecretSealer interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
}
