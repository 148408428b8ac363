package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un lote.
const (
	LoteActivo   = "ACTIVO"
	LoteAgotado  = "AGOTADO"
	LoteRetirado = "RETIRADO"
)

// DiasAlertaVencimiento ventana de alerta de vencimiento (días).
const DiasAlertaVencimiento = 30

// Lote representa una cantidad recibida con su propia fecha de vencimiento y
// saldo disponible. Se consume primero el lote más próximo a vencer.
// Invariantes: 0 <= CantidadDisponible <= CantidadRecibida;
// estado AGOTADO ⇔ CantidadDisponible == 0. Nunca se borra, solo se retira.
type Lote struct {
	ID                 string
	ProductID          string
	NumeroLote         string // Ej: "LOTE-20240115"
	FechaEntrada       time.Time
	FechaVencimiento   *time.Time // nil = sin vencimiento (ordena al final)
	CantidadRecibida   decimal.Decimal
	CantidadDisponible decimal.Decimal
	Estado             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// EstaVencido indica si el lote ya pasó su fecha de vencimiento.
func (l *Lote) EstaVencido(hoy time.Time) bool {
	if l.FechaVencimiento == nil {
		return false
	}
	return l.FechaVencimiento.Before(hoy)
}

// EstaProximoAVencer indica si vence dentro de la ventana de alerta.
func (l *Lote) EstaProximoAVencer(hoy time.Time) bool {
	if l.FechaVencimiento == nil {
		return false
	}
	limite := hoy.AddDate(0, 0, DiasAlertaVencimiento)
	return l.FechaVencimiento.After(hoy) && l.FechaVencimiento.Before(limite)
}

// DiasHastaVencimiento devuelve los días hasta el vencimiento (negativo si
// ya venció). Para lotes sin vencimiento devuelve un valor muy grande.
func (l *Lote) DiasHastaVencimiento(hoy time.Time) int {
	if l.FechaVencimiento == nil {
		return 1<<31 - 1
	}
	return int(l.FechaVencimiento.Sub(hoy).Hours() / 24)
}
