package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBeneficiariesPath(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(ListBeneficiariesResponse{
			Beneficiaries: []Beneficiary{{ID: "b-1", Name: "أحمد"}},
			TotalCount:    1,
			Page:          2,
			PageSize:      25,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	list, err := client.ListBeneficiaries(context.Background(), "inst-9", 2, 25)
	require.NoError(t, err)

	assert.Equal(t, "/institutions/inst-9/beneficiaries", gotPath)
	assert.Contains(t, gotQuery, "page=2")
	assert.Contains(t, gotQuery, "pageSize=25")
	require.Len(t, list.Beneficiaries, 1)
	assert.Equal(t, "أحمد", list.Beneficiaries[0].Name)
}

func TestCreateBeneficiaryValidation(t *testing.T) {
	client := NewClient("http://127.0.0.1:0")

	_, err := client.CreateBeneficiary(context.Background(), "inst-9", CreateBeneficiaryRequest{
		Name: "بدون هوية",
		// NationalID missing
		FamilySize: 3,
	})
	require.Error(t, err)

	_, err = client.CreateBeneficiary(context.Background(), "inst-9", CreateBeneficiaryRequest{
		Name:       "عائلة فارغة",
		NationalID: "407001122",
		FamilySize: 0,
	})
	require.Error(t, err, "family size below 1 must fail validation")
}

func TestCreateEmployeeRejectsUnknownRole(t *testing.T) {
	client := NewClient("http://127.0.0.1:0")

	_, err := client.CreateEmployee(context.Background(), "inst-9", CreateEmployeeRequest{
		Name:     "سارة",
		Email:    "sara@example.org",
		Password: "s3cret-pass",
		Role:     "SUPERVISOR",
	})
	require.Error(t, err, "role outside the known set must fail validation")
}

func TestVerifyCoupon(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/institutions/inst-9/coupons/verify", r.URL.Path)

		var req VerifyCouponRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "WSL-2024-0042", req.Code)

		json.NewEncoder(w).Encode(CouponVerification{
			Valid:       true,
			Coupon:      &Coupon{Code: "WSL-2024-0042", Status: CouponStatusDelivered},
			Beneficiary: &Beneficiary{ID: "b-1", Name: "أحمد"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.VerifyCoupon(context.Background(), "inst-9", "WSL-2024-0042")
	require.NoError(t, err)

	assert.True(t, result.Valid)
	require.NotNil(t, result.Coupon)
	assert.Equal(t, CouponStatusDelivered, result.Coupon.Status)
	require.NotNil(t, result.Beneficiary)
	assert.Equal(t, "أحمد", result.Beneficiary.Name)
}

func TestVerifyCouponEmptyCode(t *testing.T) {
	client := NewClient("http://127.0.0.1:0")

	_, err := client.VerifyCoupon(context.Background(), "inst-9", "")
	require.Error(t, err)
}

func TestListCouponsFilters(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(ListCouponsResponse{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ListCoupons(context.Background(), "inst-9", "round-3", CouponStatusIssued, 1, 50)
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "roundId=round-3")
	assert.Contains(t, gotQuery, "status=issued")
}

func TestCreateAllocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/institutions/inst-9/rounds/round-3/allocations", r.URL.Path)

		var req CreateAllocationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "b-1", req.BeneficiaryID)

		json.NewEncoder(w).Encode(Allocation{
			ID:            "a-1",
			RoundID:       "round-3",
			BeneficiaryID: "b-1",
			CouponCode:    "WSL-2024-0042",
			Status:        CouponStatusIssued,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	alloc, err := client.CreateAllocation(context.Background(), "inst-9", "round-3", CreateAllocationRequest{
		BeneficiaryID: "b-1",
		Amount:        1,
	})
	require.NoError(t, err)
	assert.Equal(t, "WSL-2024-0042", alloc.CouponCode)
}

func TestSendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/institutions/inst-9/messages/conv-1", r.URL.Path)
		json.NewEncoder(w).Encode(Message{ID: "m-1", ConversationID: "conv-1", Body: "مرحبا"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	msg, err := client.SendMessage(context.Background(), "inst-9", SendMessageRequest{
		ConversationID: "conv-1",
		Body:           "مرحبا",
	})
	require.NoError(t, err)
	assert.Equal(t, "m-1", msg.ID)
}

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/uploads", r.URL.Path)
		assert.Equal(t, "ar", r.Header.Get("Accept-Language"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "photo.jpg", header.Filename)

		json.NewEncoder(w).Encode(UploadResponse{URL: "https://cdn.wisal.org/photo.jpg"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.SetCredential("tok-1")

	resp, err := client.Upload(context.Background(), "/tmp/photos/photo.jpg", strings.NewReader("fake-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.wisal.org/photo.jpg", resp.URL)
}

func TestDeleteNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	require.NoError(t, client.DeletePost(context.Background(), "inst-9", "p-1"))
}
