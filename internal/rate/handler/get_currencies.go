package handler

import (
	"net/http"
)

type CurrencyInfo struct {
	Name    string `json:"name"`
	Nominal int    `json:"nominal"`
}

type GetCurrenciesResponse struct {
	Codes      []string                `json:"codes" example:"AUD,EUR,USD"`
	Currencies map[string]CurrencyInfo `json:"currencies"`
}

// GetCurrencies godoc
// @Summary List known currencies
// @Description All currency codes seen so far, with display metadata
// @Tags Rates
// @Produce json
// @Success 200 {object} GetCurrenciesResponse
// @Router /rates/currencies [get]
func (h *Handler) GetCurrencies(w http.ResponseWriter, _ *http.Request) {
	currencies := h.service.Currencies()

	res := GetCurrenciesResponse{
		Codes:      h.service.SupportedCodes(),
		Currencies: make(map[string]CurrencyInfo, len(currencies)),
	}
	for code, c := range currencies {
		res.Currencies[code] = CurrencyInfo{Name: c.Name, Nominal: c.Nominal}
	}
	writeJSON(w, http.StatusOK, res)
}
