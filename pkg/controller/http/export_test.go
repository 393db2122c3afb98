package http

import "github.com/caucaconecta/caucaconecta/pkg/usecase"

// Test-only accessor methods for UseCases
func (u *UseCases) Session() usecase.SessionUseCase {
	return u.session
}

func (u *UseCases) Incident() usecase.IncidentUseCase {
	return u.incident
}

func (u *UseCases) Map() usecase.MapUseCase {
	return u.mapView
}

// StatusOf exposes the error to status mapping
var StatusOf = statusOf
