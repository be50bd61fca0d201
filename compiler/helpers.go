package compiler

import "github.com/mirrow-lang/mirrow/internal/object"

func nilValue() object.Value   { return &object.Nil{} }
func trueValue() object.Value  { return &object.Bool{Value: true} }
func falseValue() object.Value { return &object.Bool{Value: false} }
