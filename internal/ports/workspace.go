package ports

import "github.com/aalvaropc/attendpay/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
