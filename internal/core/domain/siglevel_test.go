package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pacdb/internal/core/domain"
)

func TestParseSignatureLevel(t *testing.T) {
	tests := []struct {
		name    string
		options []string
		want    domain.SignatureLevel
	}{
		{name: "default", options: nil, want: domain.DefaultSigLevel},
		{name: "never", options: []string{"Never"}, want: 0},
		{
			name:    "required everywhere",
			options: []string{"Required"},
			want:    domain.SigPackage | domain.SigDatabase,
		},
		{
			name:    "optional package",
			options: []string{"Never", "PackageOptional"},
			want:    domain.SigPackage | domain.SigPackageOptional,
		},
		{
			name:    "trust all databases",
			options: []string{"DatabaseTrustAll"},
			want:    domain.DefaultSigLevel | domain.SigDatabaseMarginalOK | domain.SigDatabaseUnknownOK,
		},
		{
			name:    "trusted only",
			options: []string{"TrustAll", "TrustedOnly"},
			want:    domain.DefaultSigLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseSignatureLevel(tt.options)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSignatureLevel_Invalid(t *testing.T) {
	_, err := domain.ParseSignatureLevel([]string{"Required", "Sometimes"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidSigLevel.Error())
}

func TestSignatureLevel_String(t *testing.T) {
	assert.Equal(t, "Never", domain.SignatureLevel(0).String())
	assert.Equal(t, "Package|Database|DatabaseOptional", domain.DefaultSigLevel.String())
}

func TestDBUsage_Has(t *testing.T) {
	assert.True(t, domain.UsageAll.Has(domain.UsageSync))
	assert.True(t, domain.UsageAll.Has(domain.UsageSearch|domain.UsageUpgrade))
	assert.False(t, domain.UsageSearch.Has(domain.UsageInstall))
}
