package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/cityexplorer/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services. Field names follow
// the REST JSON so the default resolver can read them off the structs.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	locationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Location",
		Fields: graphql.Fields{
			"id":              &graphql.Field{Type: graphql.Int},
			"search_query":    &graphql.Field{Type: graphql.String},
			"formatted_query": &graphql.Field{Type: graphql.String},
			"latitude":        &graphql.Field{Type: graphql.Float},
			"longitude":       &graphql.Field{Type: graphql.Float},
			"created_at":      &graphql.Field{Type: graphql.DateTime},
		},
	})

	weatherType := graphql.NewObject(graphql.ObjectConfig{
		Name: "WeatherDay",
		Fields: graphql.Fields{
			"time":     &graphql.Field{Type: graphql.String},
			"forecast": &graphql.Field{Type: graphql.String},
		},
	})

	businessType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Business",
		Fields: graphql.Fields{
			"name":      &graphql.Field{Type: graphql.String},
			"image_url": &graphql.Field{Type: graphql.String},
			"price":     &graphql.Field{Type: graphql.String},
			"rating":    &graphql.Field{Type: graphql.Float},
			"url":       &graphql.Field{Type: graphql.String},
		},
	})

	movieType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Movie",
		Fields: graphql.Fields{
			"title":         &graphql.Field{Type: graphql.String},
			"overview":      &graphql.Field{Type: graphql.String},
			"average_votes": &graphql.Field{Type: graphql.Float},
			"total_votes":   &graphql.Field{Type: graphql.Int},
			"image_url":     &graphql.Field{Type: graphql.String},
			"popularity":    &graphql.Field{Type: graphql.Float},
			"released_on":   &graphql.Field{Type: graphql.String},
		},
	})

	trailType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Trail",
		Fields: graphql.Fields{
			"name":           &graphql.Field{Type: graphql.String},
			"location":       &graphql.Field{Type: graphql.String},
			"length":         &graphql.Field{Type: graphql.Float},
			"stars":          &graphql.Field{Type: graphql.Float},
			"star_votes":     &graphql.Field{Type: graphql.Int},
			"summary":        &graphql.Field{Type: graphql.String},
			"trail_url":      &graphql.Field{Type: graphql.String},
			"conditions":     &graphql.Field{Type: graphql.String},
			"condition_date": &graphql.Field{Type: graphql.String},
			"condition_time": &graphql.Field{Type: graphql.String},
		},
	})

	pointArgs := graphql.FieldConfigArgument{
		"lat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
		"lon": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
	}
	queryArgs := graphql.FieldConfigArgument{
		"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
	}
	point := func(p graphql.ResolveParams) domain.GeoPoint {
		return domain.GeoPoint{Lat: p.Args["lat"].(float64), Lon: p.Args["lon"].(float64)}
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"location": &graphql.Field{
				Type:        locationType,
				Description: "Resolve a search query to a stored location",
				Args:        queryArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Locations.Lookup(p.Context, p.Args["query"].(string))
				},
			},
			"weather": &graphql.Field{
				Type:        graphql.NewList(weatherType),
				Description: "Daily forecast for a point",
				Args:        pointArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Weather.Forecast(p.Context, point(p))
				},
			},
			"businesses": &graphql.Field{
				Type:        graphql.NewList(businessType),
				Description: "Businesses around a place",
				Args:        queryArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Businesses.Search(p.Context, p.Args["query"].(string))
				},
			},
			"movies": &graphql.Field{
				Type:        graphql.NewList(movieType),
				Description: "Movies matching a title search",
				Args:        queryArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Movies.Search(p.Context, p.Args["query"].(string))
				},
			},
			"trails": &graphql.Field{
				Type:        graphql.NewList(trailType),
				Description: "Hiking trails near a point",
				Args:        pointArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Trails.Near(p.Context, point(p))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint. Resolver failures are logged and
// reported to the client with the same generic message REST uses.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return reportError(c, err)
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		if result.HasErrors() {
			logger := LoggerFromCtx(c.UserContext())
			for i, e := range result.Errors {
				logger.Error("graphql resolver failed", "error", e.Message, "path", e.Path)
				result.Errors[i].Message = errorBody
			}
		}
		return c.JSON(result)
	}
}
