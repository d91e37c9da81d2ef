package fiscal

import (
	"fmt"

	"github.com/BenoitRanque/guembe-pos-extension/internal/domain"
)

// Encrypt cifra el mensaje con el cifrado de flujo RC4 y devuelve la salida
// en hexadecimal (dos caracteres por byte, minúsculas). Determinista para el
// mismo par (mensaje, llave); el verificador de la autoridad reproduce esta
// misma construcción byte a byte, por eso no se usa crypto/rc4: el estado
// debe poder revisarse contra el algoritmo publicado.
func Encrypt(msg, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("fiscal: %w", domain.ErrBlankKey)
	}

	// programación de llave: permutación de 256 entradas sembrada con la
	// llave repetida cíclicamente
	var state [256]int
	for i := 0; i < 256; i++ {
		state[i] = i
	}
	j := 0
	for i := 0; i < 256; i++ {
		j = (j + state[i] + int(key[i%len(key)])) % 256
		state[i], state[j] = state[j], state[i]
	}

	// generación: un byte de salida por byte de mensaje
	out := make([]byte, 0, len(msg)*2)
	x, y := 0, 0
	for i := 0; i < len(msg); i++ {
		x = (x + 1) % 256
		y = (state[x] + y) % 256
		state[x], state[y] = state[y], state[x]
		b := msg[i] ^ byte(state[(state[x]+state[y])%256])
		out = append(out, hexDigits[b>>4], hexDigits[b&0x0f])
	}
	return string(out), nil
}

const hexDigits = "0123456789abcdef"

// alfabeto posicional de 64 símbolos para compactar enteros grandes
var base64Alphabet = []byte(
	"0123456789" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"abcdefghijklmnopqrstuvwxyz" +
		"+/")

// EncodeBase64 convierte un entero no negativo al sistema posicional de 64
// símbolos (dígitos, A-Z, a-z, '+', '/'), símbolo más significativo primero y
// sin relleno. No es el Base64 de RFC 4648: codifica un número, no bytes.
func EncodeBase64(n int64) string {
	var buf [12]byte // 64^11 > MaxInt64
	i := len(buf)
	for c := int64(1); c > 0; {
		c = n / 64
		i--
		buf[i] = base64Alphabet[n%64]
		n = c
	}
	return string(buf[i:])
}
