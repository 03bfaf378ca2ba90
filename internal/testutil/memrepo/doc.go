// Package memrepo implementaciones en memoria de los repositorios del dominio, para tests de casos de uso.
// Cada método copia las entidades para que los tests detecten escrituras olvidadas.
package memrepo
