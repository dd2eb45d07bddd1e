package save

const snapshotSchemaJSON = `{
  "type": "object",
  "properties": {
    "version": {"type": "integer", "minimum": 0},
    "saved_at": {"type": "integer"},
    "seed": {"type": "integer"},
    "player": {
      "type": "object",
      "properties": {
        "x": {"type": "number"},
        "y": {"type": "number"},
        "vx": {"type": "number"},
        "vy": {"type": "number"},
        "state": {"type": "string"},
        "fall_start_y": {"type": "number"},
        "facing": {"type": "integer"}
      }
    },
    "ledger": {
      "type": "object",
      "properties": {
        "health": {"type": "integer"},
        "max_health": {"type": "integer", "minimum": 1},
        "energy": {"type": "number"},
        "max_energy": {"type": "number", "minimum": 0},
        "cash": {"type": "integer", "minimum": 0},
        "inventory": {"$ref": "#/$defs/counts"},
        "upgrades": {
          "type": "object",
          "properties": {
            "pickaxe": {"type": "boolean"},
            "energy_tank": {"type": "integer", "minimum": 0},
            "cargo": {"type": "integer", "minimum": 0},
            "armor": {"type": "integer", "minimum": 0}
          }
        },
        "licenses": {"type": "integer", "minimum": 1},
        "stats": {
          "type": "object",
          "properties": {
            "total_earnings": {"type": "integer"},
            "blocks_mined": {"type": "integer"},
            "ore_collected": {"$ref": "#/$defs/counts"},
            "deepest_depth": {"type": "integer"},
            "deaths": {"type": "integer"},
            "time_played": {"type": "number"}
          }
        }
      }
    },
    "world": {
      "type": "object",
      "properties": {
        "edits": {
          "type": ["array", "null"],
          "items": {
            "type": "object",
            "required": ["x", "y", "type"],
            "properties": {
              "x": {"type": "integer"},
              "y": {"type": "integer"},
              "type": {"type": "string"}
            }
          }
        },
        "revealed": {
          "type": ["array", "null"],
          "items": {
            "type": "array",
            "items": {"type": "integer"},
            "minItems": 2,
            "maxItems": 2
          }
        }
      }
    }
  },
  "$defs": {
    "counts": {
      "type": ["object", "null"],
      "additionalProperties": {"type": "integer", "minimum": 0}
    }
  }
}`
