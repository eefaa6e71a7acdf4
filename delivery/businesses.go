package delivery

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"neksoft-admin/backend"
	"neksoft-admin/delivery/model"
)

const (
	msgFetchFailed    = "Failed to fetch business data."
	namePlaceholder   = "Business Name"
	fieldPlaceholder  = "N/A"
	descPlaceholder   = "No description available."
	initialFallback   = "?"
	sessionMissingLog = "session token missing from context"
)

// listHandler renders one page of business cards. htmx page changes get only
// the list fragment.
func (h *HTTPEndpoint) listHandler(w http.ResponseWriter, r *http.Request) {
	token, ok := h.app.TokenFromContext(r.Context())
	if !ok {
		h.logger.ErrorContext(r.Context(), sessionMissingLog, "path", r.URL.Path)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	settings := h.app.Settings()
	requested := parsePage(r.URL.Query().Get("page"))
	if last := int(h.lastPages.Load()); last > 0 && requested > last {
		http.Redirect(w, r, "/data?page="+strconv.Itoa(last), http.StatusSeeOther)
		return
	}

	var list model.BusinessList
	result, err := h.app.BusinessAPI().ListBusinesses(r.Context(), token, requested, settings.PageSize)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to fetch business page", "page", requested, "error", err)
		list.Error = msgFetchFailed
	} else {
		pager := NewPager(requested, result.Total, settings.PageSize)
		if !result.Estimated {
			h.lastPages.Store(int64(pager.TotalPages))
		}
		if pager.Page != requested {
			http.Redirect(w, r, "/data?page="+strconv.Itoa(pager.Page), http.StatusSeeOther)
			return
		}
		list.Cards = businessCards(result.Items)
		list.Pagination = pager.View()
	}

	if isHTMXRequest(r) {
		// htmx only swaps 2xx responses, so errors are sent as 200 here.
		h.render(w, r, http.StatusOK, "list", "business-list", list)
		return
	}

	status := http.StatusOK
	if list.Error != "" {
		status = http.StatusBadGateway
	}
	data := model.ListPage{
		Page: h.page(w, r, "Businesses"),
		List: list,
	}
	h.render(w, r, status, "list", "layout", data)
}

// detailHandler renders every field of one business, with placeholders for
// the ones the server left out.
func (h *HTTPEndpoint) detailHandler(w http.ResponseWriter, r *http.Request) {
	token, ok := h.app.TokenFromContext(r.Context())
	if !ok {
		h.logger.ErrorContext(r.Context(), sessionMissingLog, "path", r.URL.Path)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id := chi.URLParam(r, "id")
	data := model.DetailPage{Page: h.page(w, r, "Business")}

	detail, err := h.app.BusinessAPI().GetBusiness(r.Context(), token, id)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to fetch business detail", "business_id", id, "error", err)
		data.Error = msgFetchFailed
		h.render(w, r, http.StatusBadGateway, "detail", "layout", data)
		return
	}

	fillDetail(&data, detail)
	h.render(w, r, http.StatusOK, "detail", "layout", data)
}

func businessCards(items []backend.BusinessSummary) []model.BusinessCard {
	cards := make([]model.BusinessCard, 0, len(items))
	for _, b := range items {
		cards = append(cards, model.BusinessCard{
			ID:      b.ID,
			Name:    orPlaceholder(b.FullName, namePlaceholder),
			Email:   orPlaceholder(b.Email, fieldPlaceholder),
			Status:  orPlaceholder(b.Status, fieldPlaceholder),
			LogoURL: b.LogoURL,
		})
	}
	return cards
}

func fillDetail(data *model.DetailPage, d backend.Detail) {
	b := d.Data

	data.Name = orPlaceholder(b.FullName, namePlaceholder)
	data.Initial = initialFallback
	for _, r := range strings.TrimSpace(b.FullName) {
		data.Initial = string(r)
		break
	}
	data.LogoURL = b.LogoURL

	if d.Description == "" {
		data.Description = descPlaceholder
	} else {
		data.Description = renderDescription(d.Description)
	}

	adminSeller := "No"
	if b.IsAdminSeller {
		adminSeller = "Yes"
	}
	data.Fields = []model.InfoBlock{
		{Label: "Account Type", Value: orPlaceholder(b.AccountType, fieldPlaceholder)},
		{Label: "Email", Value: orPlaceholder(b.Email, fieldPlaceholder)},
		{Label: "ID", Value: orPlaceholder(b.ID, fieldPlaceholder)},
		{Label: "Is Admin Seller", Value: adminSeller},
		{Label: "Phone Number", Value: orPlaceholder(b.PhoneNumber, fieldPlaceholder)},
		{Label: "Seller Email", Value: orPlaceholder(b.SellerEmail, fieldPlaceholder)},
		{Label: "Seller ID", Value: orPlaceholder(b.SellerID, fieldPlaceholder)},
		{Label: "Seller Type", Value: orPlaceholder(b.SellerType, fieldPlaceholder)},
	}
}
