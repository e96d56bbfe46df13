package ports

import "github.com/aalvaropc/attendpay/internal/domain"

// ChangeNotifier receives advisory notifications after successful mutations.
type ChangeNotifier interface {
	Publish(change domain.Change)
}
