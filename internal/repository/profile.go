package repository

import "github.com/aalvaropc/attendpay/internal/domain"

func (r *Repository) UserProfile() domain.UserProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profile
}

// UpdateUserProfile replaces the singleton profile. It is always persisted.
func (r *Repository) UpdateUserProfile(p domain.UserProfile) error {
	r.mu.Lock()
	r.profile = p
	err := r.persistLocked(domain.KeyUserProfile)
	r.mu.Unlock()

	if err != nil {
		return err
	}

	r.notify(domain.Change{
		Entity:  domain.EntityUserProfile,
		Op:      domain.OpUpdate,
		Title:   "Profile Updated",
		Summary: "Your profile information has been saved.",
	})
	return nil
}
