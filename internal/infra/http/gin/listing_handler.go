package ginserver

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	gin "github.com/gin-gonic/gin"

	"stayhub/internal/app/commands"
	"stayhub/internal/app/dto"
	ListingApp "stayhub/internal/app/handlers/listings"
	"stayhub/internal/app/queries"
	domainlistings "stayhub/internal/domain/listings"
)

type ListingHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Deactivate(c *gin.Context)
	Search(c *gin.Context)
	Mine(c *gin.Context)
	ReservedPeriods(c *gin.Context)
	ReservedDays(c *gin.Context)
	PropertyTypes(c *gin.Context)
	ViewHistory(c *gin.Context)
	SearchHistory(c *gin.Context)
	SearchStats(c *gin.Context)
}

type ListingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

type listingPayload struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	PropertyType string `json:"property_type"`
	Rooms        int    `json:"rooms"`
	PriceCents   int64  `json:"price_cents"`
	IsActive     *bool  `json:"is_active"`
}

func (h ListingHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req listingPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	result, err := commands.Dispatch[ListingApp.CreateListingCommand, dto.Listing](c.Request.Context(), h.Commands, ListingApp.CreateListingCommand{
		OwnerID:      user.ID,
		Title:        req.Title,
		Description:  req.Description,
		Address:      req.Address,
		PropertyType: req.PropertyType,
		Rooms:        req.Rooms,
		PriceCents:   req.PriceCents,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h ListingHandler) Get(c *gin.Context) {
	viewerID := ""
	if p, ok := currentPrincipal(c); ok {
		viewerID = p.ID
	}
	result, err := queries.Ask[ListingApp.GetListingQuery, dto.Listing](c.Request.Context(), h.Queries, ListingApp.GetListingQuery{
		ListingID: c.Param("id"),
		ViewerID:  viewerID,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ListingHandler) Update(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req listingPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	result, err := commands.Dispatch[ListingApp.UpdateListingCommand, dto.Listing](c.Request.Context(), h.Commands, ListingApp.UpdateListingCommand{
		ListingID:    c.Param("id"),
		ActorID:      user.ID,
		Title:        req.Title,
		Description:  req.Description,
		Address:      req.Address,
		PropertyType: req.PropertyType,
		Rooms:        req.Rooms,
		PriceCents:   req.PriceCents,
		Active:       active,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ListingHandler) Deactivate(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	result, err := commands.Dispatch[ListingApp.DeactivateListingCommand, dto.Listing](c.Request.Context(), h.Commands, ListingApp.DeactivateListingCommand{
		ListingID: c.Param("id"),
		ActorID:   user.ID,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ListingHandler) Search(c *gin.Context) {
	searcherID := ""
	if p, ok := currentPrincipal(c); ok {
		searcherID = p.ID
	}
	query := ListingApp.SearchListingsQuery{
		SearcherID:    searcherID,
		Terms:         splitMulti(c.QueryArray("search")),
		Address:       c.Query("address"),
		PropertyTypes: splitMulti(c.QueryArray("property_type")),
		PriceMinCents: parseInt64(c.Query("price_min")),
		PriceMaxCents: parseInt64(c.Query("price_max")),
		RoomsMin:      parseInt(c.Query("rooms_min")),
		RoomsMax:      parseInt(c.Query("rooms_max")),
		Sort:          c.Query("sort"),
		Limit:         parseInt(c.Query("limit")),
		Offset:        parseInt(c.Query("offset")),
	}
	result, err := queries.Ask[ListingApp.SearchListingsQuery, dto.ListingCollection](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ListingHandler) Mine(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	result, err := queries.Ask[ListingApp.ListOwnerListingsQuery, dto.ListingCollection](c.Request.Context(), h.Queries, ListingApp.ListOwnerListingsQuery{OwnerID: user.ID})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ListingHandler) ReservedPeriods(c *gin.Context) {
	result, err := queries.Ask[ListingApp.ReservedPeriodsQuery, ListingApp.ReservedCalendar](c.Request.Context(), h.Queries, ListingApp.ReservedPeriodsQuery{ListingID: c.Param("id")})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ListingHandler) ReservedDays(c *gin.Context) {
	result, err := queries.Ask[ListingApp.ReservedDaysQuery, ListingApp.ReservedDays](c.Request.Context(), h.Queries, ListingApp.ReservedDaysQuery{ListingID: c.Param("id")})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ListingHandler) PropertyTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"choices": domainlistings.PropertyTypeChoices()})
}

func (h ListingHandler) ViewHistory(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	result, err := queries.Ask[ListingApp.ViewHistoryQuery, ListingApp.ViewHistoryResult](c.Request.Context(), h.Queries, ListingApp.ViewHistoryQuery{UserID: user.ID})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ListingHandler) SearchHistory(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	result, err := queries.Ask[ListingApp.SearchHistoryQuery, ListingApp.SearchHistoryResult](c.Request.Context(), h.Queries, ListingApp.SearchHistoryQuery{UserID: user.ID})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ListingHandler) SearchStats(c *gin.Context) {
	result, err := queries.Ask[ListingApp.SearchStatsQuery, ListingApp.SearchStatsResult](c.Request.Context(), h.Queries, ListingApp.SearchStatsQuery{Limit: parseInt(c.Query("limit"))})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func splitMulti(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseInt(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return v
}

func parseInt64(raw string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

var _ ListingHTTP = ListingHandler{}
