package module

import "maintkpi/internal/services/api/kpi/domain"

// Ports is the kpi port set
type Ports struct {
	Service domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
