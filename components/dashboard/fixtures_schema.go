package dashboard

import (
	"fmt"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const fixturesSchemaName = "dashboard-fixtures.json"

// fixturesSchema checks document shape only. Series lengths are not compared.
const fixturesSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version"],
  "additionalProperties": false,
  "definitions": {
    "metric": {
      "type": "object",
      "required": ["title", "value"],
      "properties": {
        "title": {"type": "string", "minLength": 1},
        "value": {"type": "string"},
        "change": {"type": "number"},
        "trend": {"enum": ["up", "down"]},
        "description": {"type": "string"}
      }
    },
    "series": {
      "type": "object",
      "required": ["labels", "data"],
      "properties": {
        "labels": {"type": "array", "items": {"type": "string"}},
        "data": {"type": "array", "items": {"type": "number"}}
      }
    },
    "panel": {
      "type": "object",
      "required": ["title", "kind", "series"],
      "properties": {
        "title": {"type": "string", "minLength": 1},
        "kind": {"enum": ["bar", "line", "pie"]},
        "series": {"$ref": "#/definitions/series"}
      }
    },
    "notification": {
      "type": "object",
      "required": ["category", "title"],
      "properties": {
        "category": {"enum": ["message", "follow", "reminder", "alert"]},
        "title": {"type": "string", "minLength": 1},
        "description": {"type": "string"},
        "time": {"type": "string"}
      }
    }
  },
  "properties": {
    "version": {"enum": ["1"]},
    "name": {"type": "string"},
    "profile": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "email": {"type": "string"},
        "avatar_seed": {"type": "string"}
      }
    },
    "home_metrics": {"type": "array", "items": {"$ref": "#/definitions/metric"}},
    "home_charts": {
      "type": "object",
      "propertyNames": {"enum": ["daily", "weekly", "monthly"]},
      "additionalProperties": {"$ref": "#/definitions/series"}
    },
    "live_metrics": {"type": "array", "items": {"$ref": "#/definitions/metric"}},
    "analytics_panels": {
      "type": "object",
      "propertyNames": {"enum": ["overview", "performance", "engagement"]},
      "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/panel"}}
    },
    "events": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title"],
        "properties": {
          "title": {"type": "string", "minLength": 1},
          "time": {"type": "string"},
          "duration": {"type": "string"},
          "attendees": {"type": "integer", "minimum": 0}
        }
      }
    },
    "notifications": {
      "type": "object",
      "propertyNames": {"enum": ["all", "unread", "mentions"]},
      "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/notification"}}
    },
    "users": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "status"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "email": {"type": "string"},
          "role": {"type": "string"},
          "status": {"enum": ["Active", "Offline"]},
          "last_active": {"type": "string"}
        }
      }
    },
    "settings": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["key", "label"],
        "properties": {
          "key": {"type": "string", "pattern": "^[a-z][a-z0-9_]*$"},
          "label": {"type": "string", "minLength": 1},
          "description": {"type": "string"}
        }
      }
    }
  }
}`

var (
	fixturesSchemaOnce     sync.Once
	fixturesSchemaCompiled *jsonschema.Schema
	fixturesSchemaErr      error
)

func compiledFixturesSchema() (*jsonschema.Schema, error) {
	fixturesSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(fixturesSchemaName, strings.NewReader(fixturesSchema)); err != nil {
			fixturesSchemaErr = fmt.Errorf("dashboard: load fixtures schema: %w", err)
			return
		}
		fixturesSchemaCompiled, fixturesSchemaErr = compiler.Compile(fixturesSchemaName)
		if fixturesSchemaErr != nil {
			fixturesSchemaErr = fmt.Errorf("dashboard: compile fixtures schema: %w", fixturesSchemaErr)
		}
	})
	return fixturesSchemaCompiled, fixturesSchemaErr
}

// validateFixturesShape runs the schema over a generic decoded document.
func validateFixturesShape(raw any) error {
	schema, err := compiledFixturesSchema()
	if err != nil {
		return err
	}
	// round-trip through JSON so YAML scalars become schema friendly types
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("dashboard: normalize fixtures: %w", err)
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("dashboard: normalize fixtures: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFixtures, err)
	}
	return nil
}
