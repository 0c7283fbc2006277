package config

import "strings"

const allowedOriginsEnvVar = "ALLOWED_ORIGINS"

type Cors struct {
	Origins AllowedOrigins
}

var _ CorsConfig = Cors{}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	return strings.Join(origins, ", ")
}

// ParseAllowedOrigins reads a comma separated origin list.
func ParseAllowedOrigins(list string) AllowedOrigins {
	origins := AllowedOrigins{}
	for _, o := range strings.Split(list, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = nullValue{}
		}
	}
	return origins
}

func LoadCors() Cors {
	return Cors{Origins: ParseAllowedOrigins(GetEnv(allowedOriginsEnvVar, ""))}
}

func (c Cors) GetAllowedOrigins() AllowedOrigins {
	if c.Origins == nil {
		return AllowedOrigins{}
	}
	return c.Origins
}

func (Cors) GetAllowedMethods() string {
	return "GET, POST, PUT, DELETE"
}

func (Cors) GetAllowedHeaders() string {
	return "Content-Type"
}
