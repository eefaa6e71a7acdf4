package backend

import "github.com/tidwall/gjson"

// BusinessSummary is one card on the listing page.
type BusinessSummary struct {
	ID       string
	FullName string
	Email    string
	Status   string
	LogoURL  string
}

// Page is one page of summaries together with the total. Estimated is set
// when the server sent no total and it was inferred from the page itself.
type Page struct {
	Items     []BusinessSummary
	Total     int
	Estimated bool
}

// BusinessDetail is the record returned by the detail endpoint.
type BusinessDetail struct {
	ID            string
	FullName      string
	Email         string
	IsAdminSeller bool
	PhoneNumber   string
	SellerEmail   string
	SellerID      string
	SellerType    string
	AccountType   string
	LogoURL       string
}

// Detail wraps a BusinessDetail with the description the server sends next
// to it rather than inside it.
type Detail struct {
	Data        BusinessDetail
	Description string
}

// Fields are read as whatever JSON type the server sends. Strings pass
// through, numbers and booleans keep their JSON text, and only a missing
// value or null reads as "".

func summaryFromJSON(v gjson.Result) BusinessSummary {
	return BusinessSummary{
		ID:       field(v, "_id"),
		FullName: field(v, "fullName"),
		Email:    field(v, "email"),
		Status:   field(v, "status"),
		LogoURL:  field(v, "shopLogo.url"),
	}
}

func detailFromJSON(body []byte) Detail {
	doc := gjson.ParseBytes(body)
	data := doc.Get("data")
	return Detail{
		Data: BusinessDetail{
			ID:            field(data, "id"),
			FullName:      field(data, "fullName"),
			Email:         field(data, "email"),
			IsAdminSeller: data.Get("isAdminSeller").Bool(),
			PhoneNumber:   field(data, "phoneNumber"),
			SellerEmail:   field(data, "sellerEmail"),
			SellerID:      field(data, "sellerId"),
			SellerType:    field(data, "sellerType"),
			AccountType:   field(data, "accountType"),
			LogoURL:       field(data, "shopLogo.url"),
		},
		Description: field(doc, "description"),
	}
}

func field(v gjson.Result, path string) string {
	r := v.Get(path)
	switch r.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return r.Str
	default:
		return r.Raw
	}
}
