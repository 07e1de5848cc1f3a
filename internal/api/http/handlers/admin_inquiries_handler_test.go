package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iemarche/inquiry-service/internal/api/dto"
)

func TestSummaryCompanyIDsDeduplicatesAndSkipsGeneral(t *testing.T) {
	a, b := int64(7), int64(9)
	items := []dto.InquirySummary{
		{ID: 1, CompanyID: &a},
		{ID: 2},
		{ID: 3, CompanyID: &b},
		{ID: 4, CompanyID: &a},
	}

	require.Equal(t, []int64{7, 9}, summaryCompanyIDs(items))
	require.Empty(t, summaryCompanyIDs([]dto.InquirySummary{{ID: 1}}))
}

func TestApplyCompanyNamesAttachesToDirectedRows(t *testing.T) {
	a, b := int64(7), int64(9)
	items := []dto.InquirySummary{
		{ID: 1, CompanyID: &a},
		{ID: 2},
		{ID: 3, CompanyID: &b},
	}

	applyCompanyNames(items, map[int64]string{7: "大和工務店"})

	require.NotNil(t, items[0].CompanyName)
	require.Equal(t, "大和工務店", *items[0].CompanyName)
	require.Nil(t, items[1].CompanyName, "general inquiries carry no company name")
	require.Nil(t, items[2].CompanyName, "unknown companies stay unnamed")
}
