package survey

// questionsDocumentSchema guards the shape of data/questions.yaml. Cross
// references (dependsOn, option/scoring lengths) are checked by NewCatalog.
const questionsDocumentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["sections"],
  "properties": {
    "sections": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "title", "questions"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string"},
          "questions": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["id", "text", "type"],
              "properties": {
                "id": {"type": "string", "minLength": 1},
                "text": {"type": "string"},
                "type": {"enum": ["single_choice", "numeric", "free_text"]},
                "options": {"type": "array", "items": {"type": "string"}},
                "scoring": {"type": "array", "items": {"type": "number"}},
                "categories": {"type": "array", "items": {"type": "string"}},
                "multiplier": {"type": "number", "minimum": 0},
                "dependsOn": {"type": "string"},
                "dependsOnValue": {"type": "string"},
                "notes": {"type": "string"},
                "intervention": {"type": "string"},
                "required": {"type": "boolean"},
                "unit": {"type": "string"},
                "multiline": {"type": "boolean"},
                "hasFollowUp": {"type": "boolean"},
                "demographicMultiplier": {
                  "type": "object",
                  "properties": {
                    "range": {"type": "array", "items": {"type": "number"}, "minItems": 2, "maxItems": 2},
                    "value": {"type": "number"},
                    "condition": {"type": "string"},
                    "note": {"type": "string"}
                  },
                  "additionalProperties": false
                }
              },
              "additionalProperties": false
            }
          }
        },
        "additionalProperties": false
      }
    },
    "categories": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "color": {"type": "string", "pattern": "^#[0-9A-Fa-f]{6}$"},
          "description": {"type": "string"}
        },
        "additionalProperties": false
      }
    }
  }
}`

// surveyConfigSchema guards the shape of data/survey_config.yaml.
const surveyConfigSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["defaultOrder", "sourceConfigurations"],
  "properties": {
    "defaultOrder": {"type": "array", "items": {"type": "string"}},
    "conditionalRules": {
      "type": "object",
      "properties": {
        "skipRules": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["condition"],
            "properties": {
              "condition": {"type": "string"},
              "skipSections": {"type": "array", "items": {"type": "string"}}
            },
            "additionalProperties": false
          }
        },
        "showRules": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["condition"],
            "properties": {
              "condition": {"type": "string"},
              "showQuestions": {"type": "array", "items": {"type": "string"}}
            },
            "additionalProperties": false
          }
        }
      },
      "additionalProperties": false
    },
    "sourceConfigurations": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["order"],
        "properties": {
          "order": {
            "oneOf": [
              {"type": "string"},
              {"type": "array", "items": {"type": "string"}}
            ]
          },
          "skipSections": {"type": "array", "items": {"type": "string"}}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`
