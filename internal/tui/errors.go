// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/refugiapp/refugiapp/internal/adapter"
	"github.com/refugiapp/refugiapp/internal/export"
	"github.com/refugiapp/refugiapp/internal/gateway"
)

const (
	msgServerUnavailable = "Sin conexión o el servidor no está disponible."
	msgNotSupported      = "Esta operación no está disponible en modo de prueba."

	msgMissingCredentials = "Por favor, ingresa tu correo y contraseña."
	msgWrongCredentials   = "Las credenciales son incorrectas. Por favor, intentá de nuevo."
	msgGoogleFailed       = "No se pudo iniciar sesión con Google."
	msgProviderMismatch   = "Esta cuenta fue creada con Google. Puedes iniciar con Google o crear una contraseña vía correo."
	msgMissingEmail       = "Ingresa tu correo para recibir el enlace."
	msgResetSent          = "Se envió un correo para crear/recuperar la contraseña."
	msgResetFailed        = "No fue posible enviar el correo de restablecimiento."

	msgSignUpMissing   = "Ingresa email y contraseña."
	msgPasswordsDiffer = "Las contraseñas no coinciden."
	msgSignUpMismatch  = "Esta cuenta ya existe con Google. Iniciá sesión con Google o restablecé la contraseña."
	msgAccountExists   = "Ya existe una cuenta con ese correo."
	msgSignUpFailed    = "No se pudo crear la cuenta."

	msgResidentSaved  = "Habitante registrado con éxito"
	msgResidentFailed = "Hubo un error al guardar el registro. Intentá de nuevo."

	msgItemsFailed = "No se pudieron cargar los elementos."

	msgNothingToExport = "No hay datos para exportar."
	msgExportFailed    = "No se pudo generar el reporte."
	msgSaveFailed      = "No se pudo guardar el archivo."
	msgDownloadOnly    = "La descarga solo está disponible para reportes del servidor."
)

func humanizeServerUnavailableError(err error, fallback string) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") ||
		errors.Is(err, adapter.ErrServiceUnavailable) ||
		errors.Is(err, adapter.ErrBadGateway) {
		return msgServerUnavailable
	}
	if errors.Is(err, gateway.ErrNotSupported) {
		return msgNotSupported
	}

	return fallback
}

func signInErrorMessage(err error, federated bool) string {
	var mismatch *gateway.AccountProviderMismatch
	if errors.As(err, &mismatch) {
		return msgProviderMismatch
	}
	if federated {
		return humanizeServerUnavailableError(err, msgGoogleFailed)
	}
	return humanizeServerUnavailableError(err, msgWrongCredentials)
}

func signUpErrorMessage(err error) string {
	var mismatch *gateway.AccountProviderMismatch
	if errors.As(err, &mismatch) {
		return msgSignUpMismatch
	}
	if errors.Is(err, adapter.ErrConflict) {
		return msgAccountExists
	}
	return humanizeServerUnavailableError(err, msgSignUpFailed)
}

func residentErrorMessage(err error) string {
	return humanizeServerUnavailableError(err, msgResidentFailed)
}

func exportErrorMessage(err error) string {
	var exportErr *export.ExportError
	if errors.As(err, &exportErr) && exportErr.Op == "save" {
		return msgSaveFailed
	}
	return humanizeServerUnavailableError(err, msgExportFailed)
}
