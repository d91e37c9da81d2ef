package fiscal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BenoitRanque/guembe-pos-extension/internal/domain"
)

// DateLayout es el formato de fecha que intercambia el algoritmo del código
// de control con la autoridad: numeral de 8 dígitos sin separadores.
const DateLayout = "20060102"

// FormatDate formatea la fecha como numeral YYYYMMDD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ControlCodeParams son los datos de la factura que entran al código de
// control, en el orden exigido por el verificador de la autoridad.
type ControlCodeParams struct {
	AuthorizationOrder string          // número de orden de la dosificación
	InvoiceNumber      string          // número de factura dentro del rango
	CustomerTaxID      string          // NIT del cliente, solo dígitos
	DocDate            string          // fecha de emisión YYYYMMDD
	Amount             decimal.Decimal // importe total de la factura
	Key                string          // llave secreta de la dosificación
}

// ControlCodeService calcula el código de control (versión 7) de una factura
// fiscal. Puro y determinista: la misma entrada produce siempre el mismo
// código.
type ControlCodeService struct{}

// NewControlCodeService crea el servicio.
func NewControlCodeService() *ControlCodeService {
	return &ControlCodeService{}
}

// Generate produce el código de control: grupos de dos caracteres
// hexadecimales en mayúscula separados por guion. El orden de los pasos debe
// reproducirse exactamente para que el verificador de la autoridad acepte el
// código.
func (s *ControlCodeService) Generate(p ControlCodeParams) (string, error) {
	if p.Key == "" {
		return "", fmt.Errorf("fiscal: %w", domain.ErrBlankKey)
	}
	if err := validateNumeral("NroFactura", p.InvoiceNumber); err != nil {
		return "", err
	}
	if err := validateNumeral("NITCliente", p.CustomerTaxID); err != nil {
		return "", err
	}
	if len(p.DocDate) != 8 {
		return "", fmt.Errorf("fiscal: Fecha debe tener formato YYYYMMDD, se recibió %q", p.DocDate)
	}
	if err := validateNumeral("Fecha", p.DocDate); err != nil {
		return "", err
	}

	// 1. importe redondeado al entero más cercano, mitad hacia arriba
	amount := roundHalfUp(p.Amount)

	// 2. dos dígitos Verhoeff sobre cada campo numérico
	invoice := VerhoeffAppend(p.InvoiceNumber, 2)
	taxID := VerhoeffAppend(p.CustomerTaxID, 2)
	date := VerhoeffAppend(p.DocDate, 2)
	amountStr := VerhoeffAppend(strconv.FormatInt(amount, 10), 2)

	// 3. cinco dígitos Verhoeff sobre la suma de los cuatro numerales; los
	// últimos cinco caracteres seleccionan los cortes de la llave
	sum, err := sumNumerals(invoice, taxID, date, amountStr)
	if err != nil {
		return "", err
	}
	padded := VerhoeffAppend(strconv.FormatInt(sum, 10), 5)
	selectors := padded[len(padded)-5:]

	// 4. mensaje: cada campo seguido de un corte de la llave de longitud
	// 1 + selector; los cinco cortes particionan un prefijo de la llave
	fields := [5]string{p.AuthorizationOrder, invoice, taxID, date, amountStr}
	var msg strings.Builder
	pos := 0
	for i := 0; i < 5; i++ {
		n := 1 + int(selectors[i]-'0')
		msg.WriteString(fields[i])
		msg.WriteString(keySlice(p.Key, pos, n))
		pos += n
	}

	// 5. primer cifrado, en mayúscula
	codif, err := Encrypt(msg.String(), p.Key+selectors)
	if err != nil {
		return "", err
	}
	codif = strings.ToUpper(codif)

	// 6. suma total y sumas parciales por posición módulo 5 de los bytes
	total := 0
	var partial [5]int
	for i := 0; i < len(codif); i++ {
		total += int(codif[i])
		partial[i%5] += int(codif[i])
	}

	// 7. sumatoria de productos, cada término dividido por 1 + selector
	stt := int64(0)
	for i := 0; i < 5; i++ {
		stt += int64(total*partial[i]) / int64(1+int(selectors[i]-'0'))
	}

	// 8 y 9. compactar en el alfabeto de 64 símbolos, cifrar de nuevo y
	// partir en pares separados por guion
	final, err := Encrypt(EncodeBase64(stt), p.Key+selectors)
	if err != nil {
		return "", err
	}
	return joinPairs(strings.ToUpper(final)), nil
}

// roundHalfUp redondea al entero más cercano con la mitad hacia arriba.
// Este redondeo es exclusivo del código de control; los importes monetarios
// usan redondeo a centavos y no deben unificarse con este.
func roundHalfUp(d decimal.Decimal) int64 {
	floor := d.Floor()
	if d.Sub(floor).GreaterThanOrEqual(decimal.New(5, -1)) {
		return floor.IntPart() + 1
	}
	return floor.IntPart()
}

// sumNumerals suma los numerales como enteros de 64 bits. Los numerales del
// algoritmo nunca superan 17 dígitos, así que la suma no desborda.
func sumNumerals(numerals ...string) (int64, error) {
	var sum int64
	for _, n := range numerals {
		v, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("fiscal: numeral fuera de rango %q: %w", n, err)
		}
		sum += v
	}
	return sum, nil
}

// keySlice devuelve el corte [pos, pos+n) de la llave; si la llave se agota,
// el corte vuelve más corto o vacío, igual que substr en el verificador.
func keySlice(key string, pos, n int) string {
	if pos >= len(key) {
		return ""
	}
	end := pos + n
	if end > len(key) {
		end = len(key)
	}
	return key[pos:end]
}

func joinPairs(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i += 2 {
		if i > 0 {
			b.WriteByte('-')
		}
		end := i + 2
		if end > len(s) {
			end = len(s)
		}
		b.WriteString(s[i:end])
	}
	return b.String()
}

func validateNumeral(name, s string) error {
	if s == "" {
		return fmt.Errorf("fiscal: %s es obligatorio", name)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return fmt.Errorf("fiscal: %s debe ser numérico, se recibió %q", name, s)
		}
	}
	return nil
}
