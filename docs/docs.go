// Package docs publica la especificación OpenAPI servida en /swagger/.
// Mantenida a mano: el resumen por endpoint alcanza para el front y para
// probar desde el UI; los esquemas detallados viven en los DTOs de cada módulo.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerToken": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Formato: Bearer {token}"
        }
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Registra un usuario (username + password)",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Devuelve un token de sesión",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/categories": {
            "post": {
                "tags": ["catalog"],
                "summary": "Crea una categoría",
                "security": [{"BearerToken": []}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            },
            "get": {
                "tags": ["catalog"],
                "summary": "Lista categorías",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/tags": {
            "post": {
                "tags": ["catalog"],
                "summary": "Crea un tag",
                "security": [{"BearerToken": []}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            },
            "get": {
                "tags": ["catalog"],
                "summary": "Lista tags",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/pets": {
            "post": {
                "tags": ["pets"],
                "summary": "Crea una mascota (el caller queda como owner)",
                "security": [{"BearerToken": []}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            },
            "get": {
                "tags": ["pets"],
                "summary": "Lista las mascotas del caller",
                "security": [{"BearerToken": []}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/pets/{petID}": {
            "get": {
                "tags": ["pets"],
                "summary": "Detalle de una mascota propia (incluye pujas)",
                "security": [{"BearerToken": []}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "patch": {
                "tags": ["pets"],
                "summary": "Actualiza campos de una mascota propia",
                "security": [{"BearerToken": []}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["pets"],
                "summary": "Borra una mascota propia (cascadea subasta y pujas)",
                "security": [{"BearerToken": []}],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/store": {
            "get": {
                "tags": ["store"],
                "summary": "Vitrina pública: mascotas disponibles",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/store/{petID}": {
            "get": {
                "tags": ["store"],
                "summary": "Detalle público de una mascota disponible",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/auctions": {
            "post": {
                "tags": ["auctions"],
                "summary": "Crea la subasta de una mascota propia y disponible",
                "security": [{"BearerToken": []}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            },
            "get": {
                "tags": ["auctions"],
                "summary": "Lista las subastas de mascotas del caller",
                "security": [{"BearerToken": []}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auctions/{auctionID}": {
            "get": {
                "tags": ["auctions"],
                "summary": "Detalle de una subasta propia",
                "security": [{"BearerToken": []}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "patch": {
                "tags": ["auctions"],
                "summary": "Actualiza precio inicial o fechas de una subasta propia",
                "security": [{"BearerToken": []}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["auctions"],
                "summary": "Borra una subasta propia (cascadea pujas)",
                "security": [{"BearerToken": []}],
                "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/bids": {
            "post": {
                "tags": ["bids"],
                "summary": "Puja contra una subasta ajena",
                "security": [{"BearerToken": []}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            },
            "get": {
                "tags": ["bids"],
                "summary": "Lista las pujas del caller",
                "security": [{"BearerToken": []}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/bids/{bidID}": {
            "patch": {
                "tags": ["bids"],
                "summary": "Enmienda el precio de una puja propia",
                "security": [{"BearerToken": []}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/pets/{petID}/bids": {
            "get": {
                "tags": ["bids"],
                "summary": "Pujas de una mascota (owner ve detalle; anónimo lista vacía)",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/health": {
            "get": {
                "tags": ["ops"],
                "summary": "Liveness",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Marketplace API",
	Description:      "Marketplace de mascotas con store público, subastas y pujas.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
