package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSaleRequestTotalPrice(t *testing.T) {
	tests := []struct {
		name    string
		req     RecordSaleRequest
		want    int64
		wantErr error
	}{
		{
			name: "cash settles at the agreed sale price",
			req:  RecordSaleRequest{MetodePembayaran: PaymentTunai, HargaJual: 150_000_000, UangMuka: 999},
			want: 150_000_000,
		},
		{
			name: "cash with zero price",
			req:  RecordSaleRequest{MetodePembayaran: PaymentTunai, HargaJual: 0},
			want: 0,
		},
		{
			name: "credit sums down payment, credit price and leasing funds",
			req: RecordSaleRequest{
				MetodePembayaran: PaymentKredit,
				UangMuka:         50_000_000,
				HargaKredit:      80_000_000,
				DanaDariLeasing:  30_000_000,
				HargaJual:        160_000_000,
			},
			want: 160_000_000,
		},
		{
			name: "credit ignores harga_jual in the total",
			req: RecordSaleRequest{
				MetodePembayaran: PaymentKredit,
				UangMuka:         10,
				HargaKredit:      20,
				DanaDariLeasing:  30,
				HargaJual:        9999,
			},
			want: 60,
		},
		{
			name: "credit with all zero components",
			req:  RecordSaleRequest{MetodePembayaran: PaymentKredit},
			want: 0,
		},
		{
			name:    "unknown payment method",
			req:     RecordSaleRequest{MetodePembayaran: "Barter"},
			wantErr: ErrInvalidPaymentMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.TotalPrice()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecordSaleRequestValidate(t *testing.T) {
	valid := RecordSaleRequest{
		VehicleID:        1,
		NamaPembeli:      "Budi",
		NomorHPPembeli:   "0812000111",
		AlamatPembeli:    "Bandung",
		MetodePembayaran: PaymentTunai,
		HargaJual:        100,
	}
	assert.NoError(t, valid.Validate())

	t.Run("missing vehicle id", func(t *testing.T) {
		req := valid
		req.VehicleID = 0
		assert.Error(t, req.Validate())
	})

	t.Run("missing buyer name", func(t *testing.T) {
		req := valid
		req.NamaPembeli = ""
		assert.Error(t, req.Validate())
	})

	t.Run("credit requires a leasing company", func(t *testing.T) {
		req := valid
		req.MetodePembayaran = PaymentKredit
		assert.ErrorIs(t, req.Validate(), ErrMissingLeasing)

		req.NamaLeasing = "BCA Finance"
		assert.NoError(t, req.Validate())
	})

	t.Run("invalid payment method", func(t *testing.T) {
		req := valid
		req.MetodePembayaran = "Cicilan"
		assert.ErrorIs(t, req.Validate(), ErrInvalidPaymentMethod)
	})

	t.Run("negative amounts are rejected", func(t *testing.T) {
		req := valid
		req.UangMuka = -1
		assert.Error(t, req.Validate())
	})
}
