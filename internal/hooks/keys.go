package hooks

import (
	"github.com/ignatzorin/hvacsite/internal/dto"
	"github.com/ignatzorin/hvacsite/internal/query"
)

// Корневые ключи ресурсов. Мутация сбрасывает все записи своего корня.
const (
	RootProducts        = "products"
	RootCategories      = "categories"
	RootJobs            = "jobs"
	RootNews            = "news"
	RootProjects        = "projects"
	RootContactMessages = "contact-messages"
	RootQuotes          = "quotes"
	RootApplications    = "applications"
)

// Ключи запросов товаров.
var ProductKeys = struct {
	List     func(f dto.ProductFilters) query.Key
	Infinite func(f dto.ProductFilters) query.Key
	Detail   func(id string) query.Key
	Featured func() query.Key
	Related  func(id string) query.Key
	Search   func(term string, p dto.Pagination) query.Key
	Images   func(id string) query.Key
}{
	List:     func(f dto.ProductFilters) query.Key { return query.NewKey(RootProducts, "list", f.Normalize()) },
	Infinite: func(f dto.ProductFilters) query.Key { return query.NewKey(RootProducts, "infinite", f.Normalize()) },
	Detail:   func(id string) query.Key { return query.NewKey(RootProducts, "detail", id) },
	Featured: func() query.Key { return query.NewKey(RootProducts, "featured") },
	Related:  func(id string) query.Key { return query.NewKey(RootProducts, "related", id) },
	Search: func(term string, p dto.Pagination) query.Key {
		return query.NewKey(RootProducts, "search", term, p.Normalize())
	},
	Images: func(id string) query.Key { return query.NewKey(RootProducts, "images", id) },
}

var CategoryKeys = struct {
	List     func() query.Key
	Top      func() query.Key
	Detail   func(id string) query.Key
	Children func(parentID string) query.Key
}{
	List:     func() query.Key { return query.NewKey(RootCategories, "list") },
	Top:      func() query.Key { return query.NewKey(RootCategories, "top") },
	Detail:   func(id string) query.Key { return query.NewKey(RootCategories, "detail", id) },
	Children: func(parentID string) query.Key { return query.NewKey(RootCategories, "children", parentID) },
}

var JobKeys = struct {
	List   func(f dto.JobFilters) query.Key
	Detail func(id string) query.Key
	Active func() query.Key
}{
	List:   func(f dto.JobFilters) query.Key { return query.NewKey(RootJobs, "list", f.Normalize()) },
	Detail: func(id string) query.Key { return query.NewKey(RootJobs, "detail", id) },
	Active: func() query.Key { return query.NewKey(RootJobs, "active") },
}

var NewsKeys = struct {
	List   func(f dto.NewsFilters) query.Key
	Detail func(slug string) query.Key
	Latest func(n int) query.Key
}{
	List:   func(f dto.NewsFilters) query.Key { return query.NewKey(RootNews, "list", f.Normalize()) },
	Detail: func(slug string) query.Key { return query.NewKey(RootNews, "detail", slug) },
	Latest: func(n int) query.Key { return query.NewKey(RootNews, "latest", n) },
}

var ProjectKeys = struct {
	List   func(f dto.ProjectFilters) query.Key
	Detail func(id string) query.Key
}{
	List:   func(f dto.ProjectFilters) query.Key { return query.NewKey(RootProjects, "list", f.Normalize()) },
	Detail: func(id string) query.Key { return query.NewKey(RootProjects, "detail", id) },
}

var ContactMessageKeys = struct {
	List func(f dto.SubmissionFilters) query.Key
}{
	List: func(f dto.SubmissionFilters) query.Key {
		return query.NewKey(RootContactMessages, "list", f.Normalize())
	},
}

var ApplicationKeys = struct {
	List func(f dto.SubmissionFilters) query.Key
}{
	List: func(f dto.SubmissionFilters) query.Key {
		return query.NewKey(RootApplications, "list", f.Normalize())
	},
}

var QuoteKeys = struct {
	List func(f dto.SubmissionFilters) query.Key
}{
	List: func(f dto.SubmissionFilters) query.Key {
		return query.NewKey(RootQuotes, "list", f.Normalize())
	},
}
