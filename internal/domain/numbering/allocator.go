// Package numbering valida dosificaciones y reparte números de factura y
// seriales diarios. El mismo asignador sirve para dosificaciones por punto de
// venta o por sucursal: solo cambia el alcance que nombra los errores.
package numbering

import (
	"fmt"
	"time"

	"github.com/BenoitRanque/guembe-pos-extension/internal/domain"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/entity"
)

const dayLayout = "20060102"

// Scope identifica el alcance al que pertenecen las dosificaciones, para
// nombrarlo en los errores: {"Punto de venta", "PV01"} o {"Sucursal", "0"}.
type Scope struct {
	Kind string
	Code string
}

func (s Scope) String() string {
	return fmt.Sprintf("%s '%s'", s.Kind, s.Code)
}

// ResolveAssignment elige la asignación de rubro que gobierna la factura:
// si el cliente no es sujeto de IVA y existe una dosificación exenta para el
// rubro, se prefiere; si no, se usa la gravada.
func ResolveAssignment(scope Scope, assignments []entity.TaxGroupAssignment, taxGroup int, partnerVATLiable bool) (*entity.TaxGroupAssignment, error) {
	if !partnerVATLiable {
		for i := range assignments {
			if assignments[i].TaxGroup == taxGroup && assignments[i].VATExempt {
				return &assignments[i], nil
			}
		}
	}
	for i := range assignments {
		if assignments[i].TaxGroup == taxGroup && !assignments[i].VATExempt {
			return &assignments[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s no tiene dosificación para rubro %d", domain.ErrNotFound, scope, taxGroup)
}

// Allocator reparte números de factura de una dosificación ya validada.
// Trabaja sobre una copia privada: el estado compartido no se muta; el
// orquestador persiste Authorization() exactamente una vez al cerrar la
// transacción.
type Allocator struct {
	auth entity.Authorization
}

// NewAllocator valida la dosificación contra la fecha del día y construye el
// asignador. Cada violación es una falla de precondición que nombra el
// número de orden y el código de la dosificación. Se valida una sola vez por
// transacción; las fechas de vigencia son inclusivas.
func NewAllocator(auth entity.Authorization, today time.Time) (*Allocator, error) {
	if !auth.Active {
		return nil, fmt.Errorf("%w: dosificación %s(%s) no está activa",
			domain.ErrPrecondition, auth.OrderNumber, auth.Code)
	}
	day := today.Format(dayLayout)
	if auth.ValidFrom.Format(dayLayout) > day {
		return nil, fmt.Errorf("%w: dosificación %s(%s) aún no entra en vigencia",
			domain.ErrPrecondition, auth.OrderNumber, auth.Code)
	}
	if auth.ValidTo.Format(dayLayout) < day {
		return nil, fmt.Errorf("%w: dosificación %s(%s) ya no es vigente",
			domain.ErrPrecondition, auth.OrderNumber, auth.Code)
	}
	if auth.NextInvoice >= auth.LastInvoice {
		return nil, fmt.Errorf("%w: dosificación %s(%s) número siguiente inválido",
			domain.ErrPrecondition, auth.OrderNumber, auth.Code)
	}
	return &Allocator{auth: auth}, nil
}

// Allocate entrega el número de factura actual y avanza el contador en la
// copia privada. Nunca avanza más allá de la cota del rango.
func (al *Allocator) Allocate() (int64, error) {
	if al.auth.NextInvoice >= al.auth.LastInvoice {
		return 0, fmt.Errorf("%w: dosificación %s(%s) agotó su rango autorizado",
			domain.ErrPrecondition, al.auth.OrderNumber, al.auth.Code)
	}
	n := al.auth.NextInvoice
	al.auth.NextInvoice++
	return n, nil
}

// Authorization devuelve la dosificación con el contador al día: los
// metadatos para la factura y, al cerrar la transacción, el snapshot que se
// escribe de vuelta al almacén.
func (al *Allocator) Authorization() entity.Authorization {
	return al.auth
}
