// Package fiscal implementa los algoritmos exigidos por la administración
// tributaria para el código de control de la factura: dígitos verificadores
// Verhoeff, cifrado de flujo alegórico RC4 con salida hexadecimal y la
// composición de ambos en el código de control (versión 7).
package fiscal

import "strconv"

// Tablas del algoritmo Verhoeff.
// d: multiplicación en el grupo diedral D5. p: permutación por posición.
// inv: inverso del dígito de control.
var (
	verhoeffD = [10][10]int{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		{1, 2, 3, 4, 0, 6, 7, 8, 9, 5},
		{2, 3, 4, 0, 1, 7, 8, 9, 5, 6},
		{3, 4, 0, 1, 2, 8, 9, 5, 6, 7},
		{4, 0, 1, 2, 3, 9, 5, 6, 7, 8},
		{5, 9, 8, 7, 6, 0, 4, 3, 2, 1},
		{6, 5, 9, 8, 7, 1, 0, 4, 3, 2},
		{7, 6, 5, 9, 8, 2, 1, 0, 4, 3},
		{8, 7, 6, 5, 9, 3, 2, 1, 0, 4},
		{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
	}

	verhoeffP = [8][10]int{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		{1, 5, 7, 6, 2, 8, 3, 0, 9, 4},
		{5, 8, 0, 3, 7, 9, 6, 1, 4, 2},
		{8, 9, 1, 6, 0, 4, 3, 5, 2, 7},
		{9, 4, 5, 3, 1, 2, 6, 8, 7, 0},
		{4, 2, 8, 6, 5, 7, 3, 9, 0, 1},
		{2, 7, 9, 3, 8, 0, 6, 4, 1, 5},
		{7, 0, 4, 6, 9, 1, 3, 2, 5, 8},
	}

	verhoeffInv = [10]int{0, 4, 3, 2, 1, 5, 6, 7, 8, 9}
)

// VerhoeffDigit calcula el dígito verificador del numeral.
// El numeral se recorre de derecha a izquierda; en la generación el índice de
// la tabla de permutación va desplazado en 1 respecto de la validación. La
// asimetría es propia del algoritmo publicado y no debe corregirse.
// Asume numeral decimal: la forma la valida el llamador.
func VerhoeffDigit(numeral string) int {
	c := 0
	for i, j := 0, len(numeral)-1; j >= 0; i, j = i+1, j-1 {
		c = verhoeffD[c][verhoeffP[(i+1)%8][numeral[j]-'0']]
	}
	return verhoeffInv[c]
}

// VerhoeffAppend agrega n dígitos verificadores al numeral, de a uno: cada
// dígito nuevo se calcula sobre el numeral acumulado, incluidos los dígitos
// ya agregados.
func VerhoeffAppend(numeral string, n int) string {
	r := numeral
	for i := 0; i < n; i++ {
		r += strconv.Itoa(VerhoeffDigit(r))
	}
	return r
}

// VerhoeffValidate verifica que el último carácter del numeral sea el dígito
// verificador correcto del resto.
func VerhoeffValidate(numeral string) bool {
	c := 0
	for i, j := 0, len(numeral)-1; j >= 0; i, j = i+1, j-1 {
		c = verhoeffD[c][verhoeffP[i%8][numeral[j]-'0']]
	}
	return c == 0
}
