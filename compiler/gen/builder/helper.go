package builder

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/patterngen/schema/field"
)

// typeCode returns the Jennifer code for a type spelling.
func typeCode(info *field.TypeInfo) jen.Code {
	if info == nil {
		return jen.Any()
	}
	if info.Ident != "" {
		ident, slice := info.Ident, false
		if strings.HasPrefix(ident, "[]") {
			ident, slice = ident[2:], true
		}
		if info.PkgPath != "" {
			// Extract just the type name, jen.Qual adds the package
			// qualifier itself.
			if idx := strings.LastIndex(ident, "."); idx >= 0 {
				ident = ident[idx+1:]
			}
			base := jen.Qual(info.PkgPath, ident)
			if slice {
				return jen.Index().Add(base)
			}
			return base
		}
		if slice {
			return jen.Index().Id(ident)
		}
		return jen.Id(info.Ident)
	}
	switch info.Type {
	case field.TypeBool:
		return jen.Bool()
	case field.TypeTime:
		return jen.Qual("time", "Time")
	case field.TypeUUID:
		return jen.Qual("github.com/google/uuid", "UUID")
	case field.TypeBytes:
		return jen.Index().Byte()
	case field.TypeString:
		return jen.String()
	case field.TypeInt8:
		return jen.Int8()
	case field.TypeInt16:
		return jen.Int16()
	case field.TypeInt32:
		return jen.Int32()
	case field.TypeInt:
		return jen.Int()
	case field.TypeInt64:
		return jen.Int64()
	case field.TypeUint8:
		return jen.Uint8()
	case field.TypeUint16:
		return jen.Uint16()
	case field.TypeUint32:
		return jen.Uint32()
	case field.TypeUint:
		return jen.Uint()
	case field.TypeUint64:
		return jen.Uint64()
	case field.TypeFloat32:
		return jen.Float32()
	case field.TypeFloat64:
		return jen.Float64()
	default:
		return jen.Any()
	}
}

// paramName keeps generated parameter names from shadowing the method
// receiver. Parameters of included and replacement methods are never
// renamed, their opaque bodies reference them by declared name.
func paramName(recv, name string) string {
	if name == recv {
		return "_" + name
	}
	return name
}
