package domain

import "errors"

// Taxonomía de fallas del núcleo fiscal (sin dependencias externas).
// Los mensajes concretos se agregan con fmt.Errorf("%w: ...") nombrando la
// entidad afectada (dosificación, artículo, punto de venta).
var (
	// ErrPrecondition indica estado o datos que violan una regla de negocio
	// (dosificación vencida o agotada, artículo no permitido, montos de pago
	// que no cuadran). Siempre aborta la transacción de la venta.
	ErrPrecondition = errors.New("precondición violada")

	// ErrNotFound indica una entidad requerida inexistente.
	ErrNotFound = errors.New("recurso no encontrado")

	// ErrBlankKey indica llave secreta vacía en la dosificación. Es un
	// problema de integridad de datos, no un error del usuario.
	ErrBlankKey = errors.New("llave de cifrado vacía")
)
