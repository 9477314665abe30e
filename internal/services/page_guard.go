package services

import (
	"strings"

	"storefront/internal/models"
)

var protectedPages = map[string]bool{
	"shop.html":               true,
	"cart.html":               true,
	"admin-add-product.html":  true,
	"admin-edit-product.html": true,
}

var authPages = map[string]bool{
	models.PageLogin:    true,
	models.PageRegister: true,
}

// PageID reduces a path to the page identifier the guard table uses.
func PageID(path string) string {
	path = strings.TrimSuffix(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	if path == "" {
		return models.PageHome
	}
	return path
}

// ResolvePageAccess decides what a client may do on page given whether its
// scope has a session marker.
func ResolvePageAccess(page string, loggedIn bool) models.PageAccess {
	page = PageID(page)

	switch {
	case protectedPages[page] && !loggedIn:
		return models.PageAccess{
			Page:     page,
			Outcome:  models.AccessRedirectLogin,
			Redirect: models.NewRedirect(models.PageLogin, models.RedirectDelay),
			Notice:   models.NewNotice(models.LevelWarning, "Please login to continue shopping"),
		}
	case authPages[page] && loggedIn:
		return models.PageAccess{
			Page:     page,
			Outcome:  models.AccessRedirectHome,
			Redirect: models.NewRedirect(models.PageHome, models.RedirectDelay),
		}
	default:
		return models.PageAccess{Page: page, Outcome: models.AccessAllow}
	}
}
