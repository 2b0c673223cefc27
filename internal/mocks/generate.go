package mocks

//go:generate mockgen -destination=mock_notifier.go -package=mocks fintrack-be/internal/notification Notifier
//go:generate mockgen -destination=mock_cache.go -package=mocks fintrack-be/internal/cache Cache
