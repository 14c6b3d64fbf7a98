package client

import "errors"

// FailureReason clasifica la causa del fallo de una operación.
type FailureReason string

const (
	// FailureValidation: entrada local malformada (mensaje vacío, campo faltante).
	FailureValidation FailureReason = "validation"
	// FailureRejected: el backend devolvió un error estructurado.
	FailureRejected FailureReason = "rejected"
	// FailureNetwork: la petición no se pudo completar.
	FailureNetwork FailureReason = "network"
)

// Failure es el fallo clasificado que se muestra a la capa de presentación.
// Ningún fallo del núcleo escapa sin convertirse en uno de estos.
type Failure struct {
	Reason  FailureReason
	Message string
}

func (f *Failure) Error() string {
	return string(f.Reason) + ": " + f.Message
}

func newFailure(reason FailureReason, message string) *Failure {
	return &Failure{Reason: reason, Message: message}
}

// AsFailure convierte cualquier error del núcleo en un Failure. Errores no
// clasificados se tratan como fallo de red.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return newFailure(FailureNetwork, "request failed")
}
