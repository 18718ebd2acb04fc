package handlers

import (
	"strings"
	"testing"

	"github.com/gfrancav/assocupom/internal/models"
)

func TestReservationQRDataRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	reservation := &models.Reservation{ID: 42, CouponCode: "ABC123XYZ789"}
	qrData := reservationQRData(reservation)

	if !strings.HasPrefix(qrData, "reservation:42;coupon:ABC123XYZ789;signature:") {
		t.Fatalf("unexpected QR payload: %q", qrData)
	}

	id, err := parseReservationQRData(qrData)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Errorf("expected reservation 42, got %d", id)
	}
}

func TestParseReservationQRDataRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	qrData := reservationQRData(&models.Reservation{ID: 42, CouponCode: "ABC123XYZ789"})

	// point the payload at another reservation without re-signing
	tampered := strings.Replace(qrData, "reservation:42", "reservation:43", 1)
	if _, err := parseReservationQRData(tampered); err == nil {
		t.Error("expected tampered payload to be rejected")
	}
}

func TestParseReservationQRDataRejectsMalformed(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	malformed := []string{
		"",
		"reservation:1;coupon:ABC",
		"reservation:x;coupon:ABC;signature:00",
		"coupon:ABC;reservation:1;signature:00",
	}
	for _, qrData := range malformed {
		if _, err := parseReservationQRData(qrData); err == nil {
			t.Errorf("expected %q to be rejected", qrData)
		}
	}
}
