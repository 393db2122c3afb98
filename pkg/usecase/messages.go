package usecase

import (
	"fmt"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
)

func welcomeNotification(user *model.User) *model.Notification {
	return model.NewNotification("¡Bienvenido a CaucaConecta!",
		fmt.Sprintf("Hola %s, ya puedes usar todas las funciones de la aplicación.", user.Name))
}

func leaderPendingNotification() *model.Notification {
	return model.NewNotification("Cuenta de Líder Detectada",
		"Tu cuenta será verificada en las próximas 24 horas para activar funciones de coordinación.")
}

func logoutNotification() *model.Notification {
	return model.NewNotification("Sesión cerrada", "Has salido de CaucaConecta. ¡Vuelve pronto!")
}

func locationUpdatedNotification() *model.Notification {
	return model.NewNotification("Ubicación actualizada", "Tu ubicación ha sido capturada correctamente.")
}

func locationFailedNotification() *model.Notification {
	return model.NewNotification("Error de ubicación",
		"No se pudo obtener tu ubicación. Puedes ingresarla manualmente.").
		WithSeverity(types.NotificationWarning)
}

func incidentReportedNotification() *model.Notification {
	return model.NewNotification("Incidente reportado",
		"Tu reporte ha sido enviado. Los líderes comunitarios serán notificados.")
}

func reportUnderReviewNotification() *model.Notification {
	return model.NewNotification("Reporte en revisión",
		"Un líder comunitario está revisando tu reporte para verificación.")
}

func incidentVerifiedNotification(inc *model.Incident) *model.Notification {
	return model.NewNotification("Incidente verificado",
		fmt.Sprintf("El reporte \"%s\" fue verificado.", inc.Title))
}

func requestSubmittedNotification(kind types.RequestKind, priority types.Severity) *model.Notification {
	title := "Solicitud enviada"
	switch kind {
	case types.RequestKindEmergency:
		title = "Solicitud de emergencia enviada"
	case types.RequestKindResource:
		title = "Solicitud de recursos enviada"
	case types.RequestKindSafeZone:
		title = "Solicitud de zona segura enviada"
	}

	n := model.NewNotification(title,
		fmt.Sprintf("Tu solicitud fue registrada con prioridad %s.", priority.Label()))
	if priority == types.SeverityCritical {
		n = n.WithSeverity(types.NotificationWarning)
	}
	return n
}
