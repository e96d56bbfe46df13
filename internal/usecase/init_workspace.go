package usecase

import (
	"github.com/aalvaropc/attendpay/internal/domain"
	"github.com/aalvaropc/attendpay/internal/ports"
)

type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

func (uc *InitWorkspace) Execute(root string, force bool) error {
	return uc.initializer.Init(domain.WorkspaceSpec{Root: root, Config: domain.DefaultConfig()}, force)
}

// SeedProfile copies the identity into a profile that has neither name nor email
// yet. It reports whether the profile changed.
func (uc *InitWorkspace) SeedProfile(profiles ports.ProfileStore, id domain.Identity, role domain.Role) (bool, error) {
	if id.Name == "" && id.Email == "" {
		return false, nil
	}

	p := profiles.UserProfile()
	if p.Name != "" || p.Email != "" {
		return false, nil
	}

	p.Name = id.Name
	p.Email = id.Email
	if role != "" {
		p.Role = role
	}
	if err := profiles.UpdateUserProfile(p); err != nil {
		return false, err
	}
	return true, nil
}
