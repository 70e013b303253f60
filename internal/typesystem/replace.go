package typesystem

// MapTCon rebuilds t with every type constructor replaced by f's result.
// Type variables and the error type are kept as they are.
func MapTCon(t Type, f func(TCon) Type) Type {
	if t == nil {
		return nil
	}
	switch typ := t.(type) {
	case TCon:
		return f(typ)
	case TApp:
		newCtor := MapTCon(typ.Constructor, f)
		newArgs := make([]Type, len(typ.Args))
		for i, arg := range typ.Args {
			newArgs[i] = MapTCon(arg, f)
		}
		return TApp{
			Constructor: newCtor,
			Args:        newArgs,
		}
	case TFunc:
		newParams := make([]Type, len(typ.Params))
		for i, p := range typ.Params {
			newParams[i] = MapTCon(p, f)
		}
		newRet := MapTCon(typ.ReturnType, f)
		return TFunc{
			Params:       newParams,
			ReturnType:   newRet,
			IsVariadic:   typ.IsVariadic,
			DefaultCount: typ.DefaultCount,
		}
	default:
		return t
	}
}
