package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dumplinhq/dumplin-api/common"
	"github.com/dumplinhq/dumplin-api/subscription/domain"
)

func TestIsPro(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		sub  *domain.Subscription
		want bool
	}{
		{
			name: "no record",
			sub:  nil,
			want: false,
		},
		{
			name: "active with pro",
			sub: &domain.Subscription{
				Status:       domain.StatusActive,
				Entitlements: []string{"pro"},
			},
			want: true,
		},
		{
			name: "trialing with pro",
			sub: &domain.Subscription{
				Status:       domain.StatusTrialing,
				Entitlements: []string{"pro"},
			},
			want: true,
		},
		{
			name: "active without pro tag",
			sub: &domain.Subscription{
				Status:       domain.StatusActive,
				Entitlements: []string{"premium_stickers"},
			},
			want: false,
		},
		{
			name: "expired keeps nothing",
			sub: &domain.Subscription{
				Status:       domain.StatusExpired,
				Entitlements: []string{},
			},
			want: false,
		},
		{
			name: "cancelled inside grace period",
			sub: &domain.Subscription{
				Status:       domain.StatusCancelled,
				Entitlements: []string{"pro"},
				ExpiresAt:    timePtr(now.Add(5 * 24 * time.Hour)),
			},
			want: true,
		},
		{
			name: "cancelled past expiry",
			sub: &domain.Subscription{
				Status:       domain.StatusCancelled,
				Entitlements: []string{"pro"},
				ExpiresAt:    timePtr(now.Add(-24 * time.Hour)),
			},
			want: false,
		},
		{
			name: "cancelled without expiry",
			sub: &domain.Subscription{
				Status:       domain.StatusCancelled,
				Entitlements: []string{"pro"},
			},
			want: false,
		},
		{
			name: "cancelled in grace period without pro tag",
			sub: &domain.Subscription{
				Status:       domain.StatusCancelled,
				Entitlements: []string{},
				ExpiresAt:    timePtr(now.Add(24 * time.Hour)),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPro(tt.sub, now))
		})
	}
}

func TestIsPro_UsesConfiguredTag(t *testing.T) {
	sub := &domain.Subscription{
		Status:       domain.StatusActive,
		Entitlements: []string{common.ProEntitlement},
	}
	assert.True(t, IsPro(sub, time.Now()))
}

func timePtr(t time.Time) *time.Time {
	return &t
}
