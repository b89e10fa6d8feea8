package trades

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tradevault/trades-api/internal/types"
	"github.com/tradevault/trades-api/pkg/response"
)

// GinHandlers contains HTTP handlers for the trade record endpoints.
type GinHandlers struct {
	service *Service
}

// NewGinHandlers creates a new set of HTTP handlers for trade endpoints.
func NewGinHandlers(service *Service) *GinHandlers {
	return &GinHandlers{
		service: service,
	}
}

// filterParams binds the six optional filter criteria from the query
// string. Pointer fields keep "not supplied" distinct from a zero value.
type filterParams struct {
	AssetClass *string  `form:"assetClass"`
	Start      *string  `form:"start"`
	End        *string  `form:"end"`
	MinPrice   *float64 `form:"minPrice"`
	MaxPrice   *float64 `form:"maxPrice"`
	TradeType  *string  `form:"tradeType"`
}

// listParams adds sorting and pagination on top of the filter criteria.
type listParams struct {
	filterParams
	Page  int    `form:"page,default=1"`
	Limit int    `form:"limit,default=10"`
	Sort  string `form:"sort"`
	Order string `form:"order,default=asc"`
}

func (p filterParams) criteria() Criteria {
	return Criteria{
		AssetClass: p.AssetClass,
		Start:      p.Start,
		End:        p.End,
		MinPrice:   p.MinPrice,
		MaxPrice:   p.MaxPrice,
		TradeType:  p.TradeType,
	}
}

// AddTradeHandler handles POST requests that submit a new trade.
// Request body carries the trade fields; the trade id is assigned here.
func (h *GinHandlers) AddTradeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var sub types.TradeSubmission
		if err := c.ShouldBindJSON(&sub); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		trade, err := h.service.Add(&sub)
		response.Handle(c, trade, err)
	}
}

// GetTradeHandler handles GET requests for a single trade by id.
// A missing trade yields an empty result, not an error.
func (h *GinHandlers) GetTradeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("trade_id"), 10, 64)
		if err != nil {
			response.BadRequest(c, "Trade ID must be an integer")
			return
		}

		trade := h.service.Get(id)
		if trade == nil {
			response.Success(c, gin.H{})
			return
		}
		response.Success(c, trade)
	}
}

// SearchTradesHandler handles GET requests for free-text search across
// counterparty, instrumentId, instrumentName and trader.
func (h *GinHandlers) SearchTradesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("search")
		response.Success(c, h.service.Search(query))
	}
}

// FilterTradesHandler handles GET requests applying the structured filter
// criteria without pagination.
func (h *GinHandlers) FilterTradesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var params filterParams
		if err := c.ShouldBindQuery(&params); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		matched, err := h.service.Filter(params.criteria())
		response.Handle(c, matched, err)
	}
}

// ListTradesHandler handles GET requests for the combined
// filter + sort + paginate pipeline.
func (h *GinHandlers) ListTradesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var params listParams
		if err := c.ShouldBindQuery(&params); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		result, err := h.service.List(params.criteria(), ListOptions{
			Page:  params.Page,
			Limit: params.Limit,
			Sort:  params.Sort,
			Order: params.Order,
		})
		response.Handle(c, result, err)
	}
}
