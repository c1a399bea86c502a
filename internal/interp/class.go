package interp

import "fmt"

// Class is a class value: its method table plus an optional superclass,
// per spec §4.5 "Classes".
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

func (c *Class) Type() string   { return "CLASS" }
func (c *Class) String() string { return c.Name }

// findMethod walks the class then its ancestors, per spec §4.5 "Method
// lookup".
func (c *Class) findMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.findMethod(name)
	}
	return nil, false
}

// Arity is the arity of init (0 if the class or its ancestors define
// none), per spec §4.5.
func (c *Class) Arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs an instance and, if an init method exists anywhere in
// the ancestor chain, binds and invokes it with the call's arguments.
func (c *Class) Call(i *Interpreter, arguments []Value) (Value, error) {
	instance := NewInstance(c)
	if init, ok := c.findMethod("init"); ok {
		if _, err := init.Bind(instance).Call(i, arguments); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is an instance of a Class: a field table plus a back-pointer
// to its class for method lookup.
type Instance struct {
	class  *Class
	fields map[string]Value
}

func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: make(map[string]Value)}
}

func (inst *Instance) Type() string   { return "INSTANCE" }
func (inst *Instance) String() string { return inst.class.Name + " instance" }

// Get implements spec §4.5 "Get(instance, name)": fields first, then a
// method bound to this instance.
func (inst *Instance) Get(name string) (Value, error) {
	if v, ok := inst.fields[name]; ok {
		return v, nil
	}
	if method, ok := inst.class.findMethod(name); ok {
		return method.Bind(inst), nil
	}
	return nil, fmt.Errorf("undefined property '%s'", name)
}

// Set assigns a field on the instance.
func (inst *Instance) Set(name string, value Value) {
	inst.fields[name] = value
}
